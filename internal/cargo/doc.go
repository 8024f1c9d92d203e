// Package cargo parses crate diagrams and runs the crane simulation for the
// cratemover CLI.
//
// An input file has two sections separated by a blank line:
//
//	    [D]
//	[N] [C]
//	[Z] [M] [P]
//	 1   2   3
//
//	move 1 from 2 to 1
//	move 3 from 1 to 3
//
// The diagram section is read top-down but stacks are built bottom-up, so
// rows are folded in reverse file order (BuildHold). Move commands are then
// applied strictly in file order by a Crane that lifts one crate at a time;
// moving several crates therefore reverses their relative order.
//
// Simulation drives the whole run as a small state machine and never hands
// out a partially simulated Hold: the first parse or index error is final.
package cargo
