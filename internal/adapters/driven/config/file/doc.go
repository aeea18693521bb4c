// Package file provides file-backed configuration: the TOML settings file,
// user-editable LLM prompts and dotenv loading, all under ~/.echo by default.
package file
