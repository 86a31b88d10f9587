package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// release is a parsed "vMAJOR[.MINOR[.PATCH]][-PRE]" tag.
type release struct {
	numbers [3]int
	pre     string
}

func parseRelease(s string) (release, error) {
	var r release

	core, pre, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(s), "v"), "-")
	parts := strings.Split(core, ".")
	if core == "" || len(parts) > len(r.numbers) {
		return r, fmt.Errorf("malformed version %q", s)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return r, fmt.Errorf("malformed version %q", s)
		}
		r.numbers[i] = n
	}

	r.pre = pre
	return r, nil
}

// Compare orders two release tags: 1 if a is newer than b, -1 if older, 0 if equal.
// Missing minor and patch numbers are zero. A pre-release is older than its release,
// and pre-releases of the same version compare lexically.
func Compare(a, b string) (int, error) {
	ra, err := parseRelease(a)
	if err != nil {
		return 0, err
	}

	rb, err := parseRelease(b)
	if err != nil {
		return 0, err
	}

	if i, differ := lo.Find([]int{0, 1, 2}, func(i int) bool {
		return ra.numbers[i] != rb.numbers[i]
	}); differ {
		if ra.numbers[i] > rb.numbers[i] {
			return 1, nil
		}
		return -1, nil
	}

	switch {
	case ra.pre == rb.pre:
		return 0, nil
	case ra.pre == "":
		return 1, nil
	case rb.pre == "":
		return -1, nil
	default:
		return strings.Compare(ra.pre, rb.pre), nil
	}
}
