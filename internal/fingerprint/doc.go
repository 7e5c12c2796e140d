// Package fingerprint provides the single hash primitive used everywhere a
// content fingerprint is computed: canonical bytes in, lowercase hex SHA-256
// out. No other hash family or encoding is permitted to appear in the
// module; mixing primitives is how replay integrity guarantees rot.
package fingerprint
