package model

// DefaultServiceOptions seeds the service option collection the
// first time it is read while empty. Order matters: the first
// option is the form default.
var DefaultServiceOptions = []string{"컷", "펌", "매직", "셋팅", "염색", "클리닉", "시술"}

// legacyServiceOption is dropped from every read. The stored rows
// are left alone; the cleanup happens at read time only.
const legacyServiceOption = "시술"

// requiredServiceOptions are appended at read time when absent.
var requiredServiceOptions = []string{"드라이", "샴푸"}

// NormalizeServiceOptions applies the read-time policy to stored
// options: remove the legacy name, inject required names that are
// missing. The policy re-runs on every load rather than migrating
// stored data.
func NormalizeServiceOptions(options []string) []string {
	out := make([]string, 0, len(options)+len(requiredServiceOptions))
	for _, opt := range options {
		if opt == legacyServiceOption {
			continue
		}
		out = append(out, opt)
	}
	for _, req := range requiredServiceOptions {
		if !containsOption(out, req) {
			out = append(out, req)
		}
	}
	return out
}

func containsOption(options []string, name string) bool {
	for _, opt := range options {
		if opt == name {
			return true
		}
	}
	return false
}
