// Package domain defines the core business entities for Sitesmith.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Block: A node of a block tree (template or page content)
//   - BlockTypeDefinition: A catalog entry describing one kind of block
//   - Template: A reusable block tree with slot references and field definitions
//   - Site: A user's site built from a template, with its data record and theme
//   - Page: One page of a multi-page site, owning its own block tree
//   - NavigationMenu: The menu derived from a site's pages
//   - EditorSnapshot: An immutable view of one editing session
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
