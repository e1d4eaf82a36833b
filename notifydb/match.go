package notifydb

// Matches returns whether |registered| covers |candidate|: the two are
// byte-identical through the end of |registered|, and |candidate| then ends
// or descends into a sub-directory. A registration denotes its directory and
// everything under it, so "foo" covers both "foo" and "foo/bar" but never
// the sibling "foobar". A registration whose remainder past the shared
// prefix is exactly "/" matches regardless of how the candidate continues:
// "foo/" covers "foo" and even "foobar", but not "foo/bar", whose slash is
// consumed by the prefix scan.
func Matches(registered, candidate string) bool {
	var i int
	for i != len(registered) && i != len(candidate) && registered[i] == candidate[i] {
		i++
	}
	if i == len(registered) {
		return i == len(candidate) || candidate[i] == '/'
	}
	return registered[i:] == "/"
}
