package nlp

import "strings"

var stopwords = toSet(`a about above after again against all am an and any are as at be because been
before being below between both but by can could did do does doing down during each few for from
further had has have having he her here hers herself him himself his how i if in into is it its
itself just me more most my myself no nor not now of off on once only or other our ours ourselves
out over own same she should so some such than that the their theirs them themselves then there
these they this those through to too under until up very was we were what when where which while
who whom why will with would you your yours yourself yourselves also using used use including
within across per via etc new well`)

// Résumé filler: verbs and generic nouns that never name a skill.
var resumeFiller = toSet(`responsible worked work working experience experienced years year team
teams role roles skills skill summary profile objective present current led lead managed manage
developed develop built build designed design improved improve created create implemented
implement collaborated delivered maintained responsibilities achievements references available
request email phone address linkedin github page`)

var months = toSet(`january february march april may june july august september october november
december jan feb mar apr jun jul aug sep sept oct nov dec`)

func toSet(words string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		out[w] = struct{}{}
	}
	return out
}

// IsStopword reports whether the lower-cased word is an English function word.
func IsStopword(w string) bool {
	_, ok := stopwords[strings.ToLower(w)]
	return ok
}

// IsFiller reports whether the word is common résumé boilerplate.
func IsFiller(w string) bool {
	_, ok := resumeFiller[strings.ToLower(w)]
	return ok
}

// IsMonth reports whether the word is an English month name or abbreviation.
func IsMonth(w string) bool {
	_, ok := months[strings.ToLower(strings.TrimSuffix(w, "."))]
	return ok
}
