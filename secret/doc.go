// Package secret resolves named secrets for templates.
//
// [SSM] reads parameters from AWS Systems Manager Parameter Store with
// decryption enabled. The client is created from the default AWS
// configuration on first use, and each parameter is fetched at most once per
// provider. [Static] serves values from a map, which is useful for tests and
// for rendering without network access.
package secret
