// Package script replays scripted Focus games written in HCL.
//
// A playbook names two players and an ordered list of steps. Each step is a
// move, a reserve placement or a query, and may state the result it expects:
//
//	player {
//	  name  = "PlayerA"
//	  color = "Red"
//	}
//	player {
//	  name  = "PlayerB"
//	  color = "Green"
//	}
//
//	step "move" {
//	  player = "PlayerA"
//	  from   = [0, 0]
//	  to     = [0, 1]
//	  count  = 1
//	  expect = "Successfully moved"
//	}
//
//	step "show_pieces" {
//	  at     = [0, 1]
//	  expect = ["RED", "RED"]
//	}
//
// Runner plays the steps against a service.GameService and writes one
// transcript line per step. Expectations are compared as cty values, so a
// tuple literal matches the list of colors a query returns.
package script
