package hiveserver2

import (
	"regexp"
	"strings"
)

// PartitionKey is one partitioning column recovered from an extended
// description.
type PartitionKey struct {
	Name    string
	Type    string
	Comment string
}

// ExtendedDescription holds the fields recovered from the textual DESCRIBE
// EXTENDED output.
type ExtendedDescription struct {
	PartitionKeys []PartitionKey
	Location      string
	Parameters    map[string]string
}

// ExtendedDescriptionParser recovers structured metadata from the
// semi-structured DESCRIBE EXTENDED text. The grammar is undocumented and
// server-version-dependent, so the parser is pluggable per targeted version.
type ExtendedDescriptionParser interface {
	Parse(describe string) ExtendedDescription
}

var (
	partitionKeysRe = regexp.MustCompile(`partitionKeys:\[([^\]]+)\]`)
	fieldSchemaRe   = regexp.MustCompile(`FieldSchema\((.+?)\)`)
	locationRe      = regexp.MustCompile(`location:([^,]+)`)
	parametersRe    = regexp.MustCompile(`parameters:\{([^\}]+?)\}`)
)

// regexDescriptionParser matches the extended describe format emitted by the
// Hive metastore, e.g.
//
//	partitionKeys:[FieldSchema(name:datehour, type:int, comment:null)],
//	location:hdfs://localhost:8020/user/hive/warehouse/t,
//	parameters:{numPartitions=2, EXTERNAL=TRUE}
type regexDescriptionParser struct{}

func (regexDescriptionParser) Parse(describe string) ExtendedDescription {
	desc := ExtendedDescription{Parameters: map[string]string{}}

	if m := partitionKeysRe.FindStringSubmatch(describe); m != nil {
		for _, fieldSchema := range fieldSchemaRe.FindAllStringSubmatch(m[1], -1) {
			if key, ok := parsePartitionKey(fieldSchema[1]); ok {
				desc.PartitionKeys = append(desc.PartitionKeys, key)
			}
		}
	}

	if m := locationRe.FindStringSubmatch(describe); m != nil {
		desc.Location = m[1]
	}

	// parameters blocks repeat per storage descriptor; all key=value pairs
	// are merged into one map.
	for _, m := range parametersRe.FindAllStringSubmatch(describe, -1) {
		for _, pair := range strings.Split(m[1], ", ") {
			if key, value, found := strings.Cut(pair, "="); found {
				desc.Parameters[key] = value
			}
		}
	}
	return desc
}

// parsePartitionKey splits "name:datehour, type:int, comment:null" into its
// three fields.
func parsePartitionKey(s string) (PartitionKey, bool) {
	parts := strings.Split(s, ", ")
	if len(parts) != 3 {
		return PartitionKey{}, false
	}
	return PartitionKey{
		Name:    valueAfterColon(parts[0]),
		Type:    valueAfterColon(parts[1]),
		Comment: valueAfterColon(parts[2]),
	}, true
}

func valueAfterColon(s string) string {
	_, value, _ := strings.Cut(s, ":")
	return value
}
