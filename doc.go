// Package bcrypt implements the OpenBSD bcrypt adaptive password hash and the
// bcrypt_pbkdf key derivation function, both built on the EksBlowfish key
// schedule from "A Future-Adaptable Password Scheme" by Niels Provos and
// David Mazieres.
//
// # Overview
//
// The cost of a bcrypt hash is a parameter, so it can be raised as hardware
// gets faster. The expensive part is the EksBlowfish key setup, repeated
// 2^cost times; everything else is cheap.
//
// Hashes are self-describing strings:
//
//	$2b$12$R9h/cIPz0gi.URNNX3kh2O08cp6KlAm3PlA5tOQRarQ9GRRUJUncu
//	 \/ \/ \____________________/\_____________________________/
//	 |  |          salt                       digest
//	 |  cost
//	 version
//
// The salt is 16 random bytes and the digest 23 bytes, both written in a
// base64 variant with the alphabet "./A-Za-z0-9" and no padding.
//
// # Basic Usage
//
//	salt, err := bcrypt.Gensalt(12)
//	if err != nil {
//	    panic(err)
//	}
//	hash, err := bcrypt.Hashpw([]byte("correct horse"), salt)
//	if err != nil {
//	    panic(err)
//	}
//
//	ok, err := bcrypt.Verify([]byte("correct horse"), hash)
//
// Hashpw and Verify reject passwords containing a zero byte. Only the first
// 72 bytes of a password matter; longer passwords are silently truncated, so
// callers wanting to use longer passphrases should pre-hash them.
//
// # Versions
//
// The version tag selects how password bytes turn into key material:
//   - 2b, 2a, 2y: the password plus a terminating zero byte, capped at 72
//     bytes. These produce identical digests.
//   - 2x: as 2a, but reproducing the crypt_blowfish sign-extension bug for
//     bytes >= 0x80. Accepted for verification only.
//   - 2: the original format, without the terminating zero byte.
//
// # Key Derivation
//
// Kdf implements bcrypt_pbkdf as used by OpenSSH for encrypted private keys.
// Unlike Hashpw, it takes a literal round count, accepts arbitrary binary
// password and salt, and returns as many bytes as requested:
//
//	key, err := bcrypt.Kdf(password, salt, 32, 16)
//
// The output is intended for cipher keys, IVs and MAC keys. It should not be
// used as an encryption keystream.
//
// # Concurrency
//
// Every hash builds its own cipher state from a read-only template, so all
// functions are safe for concurrent use. The algorithm cannot be interrupted;
// Hasher.HashContext and Hasher.VerifyContext let a caller stop waiting, and
// Hasher.HashAll and Hasher.VerifyAll spread batches over a bounded set of
// workers.
//
// # Credential Storage
//
// CredentialStore keeps user hashes in a JSON file on any absfs.FileSystem and
// transparently upgrades hashes whose cost or version differs from the
// configured Hasher the next time the user logs in.
package bcrypt
