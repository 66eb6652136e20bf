// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so the /sync retry
// backoff can be tested without sleeping.
//
// Production code takes a [Clock] and is given Real(). Tests use
// Fake(), call WaitForTimers to make sure the code under test is
// waiting, then Advance to release it:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go service.RunSyncLoop(ctx, session, config, since, handler, c, logger)
//	c.WaitForTimers(1)
//	c.Advance(time.Second)
package clock
