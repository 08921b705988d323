// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fingerprint derives and normalizes the dedup keys used by intake.

# Client Fingerprints

Browsers send a fingerprint with each submission. Normalize trims it and
bounds its length:

	fp := fingerprint.Normalize(req.Fingerprint)

# Server Fingerprints

When the client sends none, Derive builds one from the User-Agent and client
address with HMAC-SHA256:

	fp := fingerprint.Derive(r.UserAgent(), middleware.GetClientIP(r), salt)

Derived values carry the "srv-" prefix. They are deterministic, so a client
without a fingerprint still gets one submission per browser and address
instead of every such client sharing one key.

# IP Hashing

With HASH_IPS enabled the stored origin address is a salted hash:

	hashed := fingerprint.HashIP(ip, salt)

The result is 16 hex characters (64 bits).
*/
package fingerprint
