// Package devconnect implements the account side of a small developer
// social network: user registration, credential login, stateless JWT
// issuance, and the profile lookups served behind the token gate.
//
// Credentials:
//   - Passwords are hashed with bcrypt (configurable cost, 10 by default)
//     before they reach the store. The plaintext never leaves Register and
//     Login, and User.PasswordHash is never serialized.
//   - Login failures for unknown emails and wrong passwords return the same
//     ErrInvalidCredentials so responses cannot be used to enumerate
//     accounts.
//
// Tokens:
//   - TokenService signs HS256 tokens carrying {"user":{"id":...}} and a fixed
//     TTL taken from Options. There is no session table: a token is valid
//     while its signature checks out and it has not expired.
//   - middleware/jwtware gates protected routes and stores the validated
//     claims in the fiber locals and the request context.
//
// Storage:
//   - CredentialStore is the only shared resource. The users table carries
//     a unique index on email, and Save maps unique violations to
//     ErrDuplicateUser so concurrent registrations stay correct.
package devconnect
