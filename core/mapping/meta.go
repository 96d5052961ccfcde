package mapping

import "unicode/utf8"

// Structural limits on the reserved "meta" block. Meta is free-form,
// string-only metadata carried on a field definition and handed to the
// indexing subsystem verbatim, so its size is capped tightly. The length
// limits count characters, not bytes.
const (
	metaMaxEntries     = 5
	metaMaxKeyLength   = 20
	metaMaxValueLength = 50
)

// ParseMeta validates the raw "meta" value of a field definition and returns
// it as a plain string map. Checks run in a fixed order and stop at the first
// violation: object type, entry count, then per key (deterministic order) key
// length, null value, value type, value length. Pure function; the input is
// not retained.
func ParseMeta(fieldName string, value any) (map[string]string, error) {
	raw, ok := value.(map[string]any)
	if !ok {
		return nil, newError(ErrCodeMetaType, fieldName,
			"[meta] must be an object, got %s[%v] for field [%s]", typeName(value), value, fieldName)
	}

	if len(raw) > metaMaxEntries {
		return nil, newError(ErrCodeMetaSize, fieldName,
			"[meta] can't have more than %d entries, but got %d on field [%s]", metaMaxEntries, len(raw), fieldName)
	}

	meta := make(map[string]string, len(raw))
	for _, key := range sortedKeys(raw) {
		if utf8.RuneCountInString(key) > metaMaxKeyLength {
			return nil, newError(ErrCodeMetaKeyLength, fieldName,
				"[meta] keys can't be longer than %d chars, but got [%s] for field [%s]", metaMaxKeyLength, key, fieldName)
		}

		entry := raw[key]
		if entry == nil {
			return nil, newError(ErrCodeMetaNullValue, fieldName,
				"[meta] values can't be null (field [%s])", fieldName)
		}

		s, isString := entry.(string)
		if !isString {
			return nil, newError(ErrCodeMetaValueType, fieldName,
				"[meta] values can only be strings, but got %s[%v] for field [%s]", typeName(entry), entry, fieldName)
		}

		if utf8.RuneCountInString(s) > metaMaxValueLength {
			return nil, newError(ErrCodeMetaValueLength, fieldName,
				"[meta] values can't be longer than %d chars, but got [%s] for field [%s]", metaMaxValueLength, s, fieldName)
		}

		meta[key] = s
	}

	return meta, nil
}
