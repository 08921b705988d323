// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package intake implements the submission intake pipeline.

# Steps

Submit runs, in order:

 1. Shape check: no answers is ErrEmptyAnswers; a negative completion time
    is ErrInvalidAnswers.
 2. Optional catalog validation (WithStrictValidation), rejected with a
    *ValidationError that wraps ErrInvalidAnswers.
 3. Fingerprint resolution: the client value, normalized, or a server
    derived one when the client sent none.
 4. Record construction: UUIDv7 id, millisecond UTC timestamp, client
    address (hashed with WithIPHashing).
 5. Dedup and persist: SetIfAbsent on the fingerprint, then Append.

# Rejections

Every error from Submit maps to a reason and a message:

	ErrEmptyAnswers        → EmptyAnswers
	ErrInvalidAnswers      → InvalidAnswers
	ErrDuplicateSubmission → DuplicateSubmission
	ErrStoreUnavailable    → StoreUnavailable
	ErrStoreFault          → StoreFault

	reason := intake.Reason(err)
	msg := intake.Message(err)

A failed Append after a successful index write is a StoreFault. It is
logged with both ids and never reported as success.
*/
package intake
