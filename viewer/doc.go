// Package viewer streams planner activity to a remote socket.io viewer.
//
// A Publisher turns observer callbacks and executor events into JSON-ready
// payloads and hands them to an EmitFunc. Dial connects a socket.io client
// and returns a Client whose Publisher emits over it.
//
// Events
//
//	grid              {session, seq, width, height, obstacles}
//	vertex_popped     {session, seq, x, y, key}
//	g_changed         {session, seq, x, y, value}
//	rhs_changed       {session, seq, x, y, value}
//	compute_finished  {session, seq, steps, replan, reachable, start_g}
//	search_reset      {session, seq}
//	path              {session, seq, cells}
//	robot             {session, seq, kind, x, y, heading, command, obstacles}
//
// +Inf costs are sent as null because JSON has no infinity. Every payload
// carries the session id (a UUID) and a per-publisher sequence number so the
// viewer can order and group events.
package viewer
