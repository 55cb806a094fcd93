// Package scenario loads planning scenarios from HCL files.
//
// A scenario describes the grid, start and goal, the obstacles known before
// planning and the hidden ones a robot discovers while driving:
//
//	grid {
//	  width        = var.width
//	  height       = 12
//	  connectivity = 8        # 4 (default) or 8
//	  heuristic    = true     # default true
//	}
//
//	start = [0, 0]
//	goal  = [19, 11]
//
//	obstacle "wall" {
//	  from = [5, 0]           # inclusive rectangle
//	  to   = [5, 9]
//	}
//
//	obstacle "boxes" {
//	  cells  = [[10, 4], [11, 4]]
//	  hidden = true           # unknown to the planner until sensed
//	}
//
//	robot {
//	  sensor_range = 1
//	  heading      = "East"
//	  step_delay   = "200ms"
//	}
//
// Expressions may reference var.<name>; values come from the vars map given
// to Load. Numeric and boolean strings become numbers and bools.
package scenario
