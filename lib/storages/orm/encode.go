package orm

import (
	"strings"
)

type sqlTable interface {
	CacheKey() string
}

func encodeMap[K comparable, V any](m map[K]V) map[K]V {
	if len(m) == 0 {
		return nil
	}

	return cloneMap(m)
}

func decodeMap[K comparable, V any](m map[K]V) map[K]V {
	return cloneMap(m)
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	result := make(map[K]V, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

func encodeList[V any](l []V) []V {
	if len(l) == 0 {
		return nil
	}

	return append([]V(nil), l...)
}

func decodeList[V any](l []V) []V {
	return append(make([]V, 0, len(l)), l...)
}

func compositeKey(ids ...string) string {
	return strings.Join(ids, "\n")
}
