package docsec

var testGrammar = MustGrammar(DefaultHeadingPattern,
	`^[aA] *-`, `^[xX] *-`, `^[sS] *-`, `^[/\\] *-`, `^[uU] *-`, `^[dD] *-`)
