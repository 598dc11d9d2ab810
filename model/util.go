package model

import "strings"

func containsFold(values []string, names ...string) bool {
	for _, v := range values {
		for _, n := range names {
			if strings.EqualFold(v, n) {
				return true
			}
		}
	}
	return false
}
