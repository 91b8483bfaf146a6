// Package manifest handles parsing and validation of codebuilder documents.
// It supports the two manifest kinds (request and catalog): a request names
// the root component and its data, a catalog supplies plugin types,
// injectable services and hook definitions to the lookup service. Both are
// validated against the embedded JSON schema.
package manifest
