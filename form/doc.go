// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package form holds the form renderer rules: conditional visibility,
// completion progress and advisory validation against the question catalog.
//
// A question with a conditional is shown only when the answer to the
// question it depends on is one of showWhen. A multi-select dependency
// never matches.
//
// Validate only looks at visible questions. It is advisory in the default
// configuration; intake enforces it when strict validation is enabled.
package form
