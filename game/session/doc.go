// Package session provides session management for Focus games.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short unique session ID generation
//   - Session lifecycle management and expiry
//
// Core Types:
//
// Manager is the in-memory session store. Each service.Session owns one
// engine.Game and serializes access to it through Session.Do.
//
// Session Identifiers:
//
// Callers may pick their own ID. Otherwise the manager assigns the first
// 8-character group of a random UUID. Lookups are case-insensitive.
//
// Usage:
//
//	manager := session.NewManager(logger)
//
//	sess, err := manager.Create("", playerA, playerB, preset)
//	if err != nil {
//		return err
//	}
//
//	err = sess.Do(func(g *engine.Game) error {
//		_, err := g.MovePiece("PlayerA", from, to, 1)
//		return err
//	})
//
// Cleanup:
//
// Sessions live until deleted or until CleanupExpiredSessions removes those
// idle for longer than the given age. Nothing is written to disk.
package session
