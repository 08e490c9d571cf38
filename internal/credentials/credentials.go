// Package credentials models the authentication material an invocation can
// inject into the runner: username/password pairs and SSH private keys.
package credentials

// Secret holds sensitive string material. Every formatted rendering of a
// Secret produces a masked placeholder; call Plain to read the value.
type Secret string

const mask = "********"

// Plain returns the underlying secret value.
func (s Secret) Plain() string {
	return string(s)
}

// String implements fmt.Stringer with a masked placeholder.
func (s Secret) String() string {
	return mask
}

// GoString masks %#v renderings as well.
func (s Secret) GoString() string {
	return mask
}

// MarshalYAML ensures secrets are never serialized back out in plain text.
func (s Secret) MarshalYAML() (any, error) {
	return mask, nil
}

// Credential is the sum over the supported credential variants. The absent
// case is a nil Credential.
type Credential interface {
	// Username is the remote user the runner should authenticate as.
	Username() string

	credential()
}

// Password authenticates with a username and password.
type Password struct {
	User     string
	Password Secret
}

func (p Password) Username() string { return p.User }
func (Password) credential()        {}

// PrivateKey authenticates with a username and SSH private key material.
type PrivateKey struct {
	User string
	Key  Secret
}

func (k PrivateKey) Username() string { return k.User }
func (PrivateKey) credential()        {}
