// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, expression
// evaluation and translating the decoded schema into the config model.
package hcl
