// Package password provides one-way password hashing and verification built
// on argon2id.
//
// Hash produces a single self-describing record string in PHC format that
// encodes the algorithm, version, cost parameters, salt, and digest
// together. Records therefore remain verifiable after the default
// parameters are raised, and NeedsRehash lets callers upgrade old records
// opportunistically on a successful login:
//
//	hasher := password.MustNew(password.DefaultParams())
//
//	record, err := hasher.Hash(plaintext)
//
//	ok, err := hasher.Verify(plaintext, record)
//	if err != nil {
//		// corrupt record, not a wrong password
//	}
//	if ok {
//		if upgrade, _ := hasher.NeedsRehash(record); upgrade {
//			record, _ = hasher.Hash(plaintext)
//			// persist the stronger record
//		}
//	}
//
// Verification is constant-time with respect to the password's content.
package password
