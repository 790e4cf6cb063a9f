// Package kconfig parses the mesonconfig option language and manages option
// values.
//
// # Language
//
// A configuration file is a sequence of line-oriented directives:
//
//	mainmenu "Project configuration"
//
//	config DEBUG
//		bool "Enable debugging"
//		default n
//		help
//		  Turns on extra logging.
//
//	menu "Networking"
//		depends on DEBUG || VERBOSE
//
//		choice "Transport"
//		config USE_TCP
//			bool "TCP"
//		config USE_UDP
//			bool "UDP"
//		endchoice
//
//		config PORT
//			int "Listen port"
//			default 8080
//	endmenu
//
//	comment "Generated options follow"
//	source "extra/Kconfig"
//
// Nesting is tracked with an explicit context stack (root, menu, choice,
// config). Menus may appear at the root or inside menus, choices only directly
// inside a menu. A config block ends at the first line that is not one of its
// fields (type line, default, depends on, help). Help text is every following
// line indented deeper than the help keyword.
//
// source paths resolve against the directory of the including file. Each
// included file is parsed on its own and spliced in at the directive; nesting
// is limited by WithMaxIncludeDepth.
//
// # Construction
//
// Open and Parse build the tree, validate it and apply defaults. Validation
// rejects duplicate option names (across included files too), options without
// a type or prompt, empty choices, malformed expressions, identifiers that name
// no option and defaults that do not convert to the option type. Nothing is
// returned unless every check passes.
//
// # Expressions
//
// depends on takes identifiers combined with ! (highest precedence), && or
// and, || or or (lowest), and parentheses. An identifier is true when the
// option it names has a truthy value: a true bool, a non-zero int or a
// non-empty string. Unknown and unset options are false.
//
// # Visibility
//
// An option is visible when its own expression and the expressions of every
// enclosing menu hold. Choices never gate their members; only the members' own
// expressions apply. See IsVisible, VisibleEntries, VisibleTree and
// OptionParents.
//
// # Values
//
// Values are persisted as sorted name=value lines: bools as y/n, strings
// quoted, ints in decimal. Load is lenient about names it does not know;
// SetOption is strict.
//
// # Errors
//
// All failures are *Error values whose kind matches one of the Err* sentinels
// with errors.Is. Construction errors carry the file and line of the offending
// directive.
//
// # Concurrency
//
// Config has no internal locking. Reads may run concurrently only while no
// goroutine calls SetOption, Load or LoadConfig.
package kconfig
