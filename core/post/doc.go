// Package post defines the blog post entity and its storage contract.
package post
