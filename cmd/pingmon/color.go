// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	waitingSampleStyle     = termenv.Style{}.Foreground(termenv.ANSIYellow)
	reachableSampleStyle   = termenv.Style{}.Foreground(termenv.ANSIGreen)
	unreachableSampleStyle = termenv.Style{}.Foreground(termenv.ANSIRed)
)

var headerStyle = termenv.Style{}.Bold()
