// Package config holds the typed CI configuration produced from issue
// comment directives: the table of recognized keys, the Configuration
// model with its JSON form, validation, and value lookup for the shell.
package config
