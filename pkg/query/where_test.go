package query

import (
	"errors"
	"testing"

	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/M0rdr3d/lisk/pkg/filters"
	"github.com/M0rdr3d/lisk/pkg/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatedField struct {
	filterType resources.FilterType
	alias      string
	fieldName  string
	condition  *string
}

func strPtr(s string) *string {
	return &s
}

// generateFilters runs the generator for every field and returns the merged
// mapping and the resolver from filter key to alias.
func generateFilters(t *testing.T, fields ...generatedField) (resources.Filters, AliasResolver) {
	merged := resources.Filters{}
	aliases := map[string]string{}
	for _, f := range fields {
		generated, err := filters.Generate(f.filterType, f.alias, f.fieldName, nil, f.condition)
		require.NoError(t, err)
		for key := range generated {
			aliases[key] = f.alias
		}
		merged.Merge(generated)
	}

	return merged, func(key string) (string, bool) {
		alias, ok := aliases[key]
		return alias, ok
	}
}

func testFilters(t *testing.T) (resources.Filters, AliasResolver) {
	return generateFilters(t,
		generatedField{filterType: resources.TextFilterType, alias: "name", fieldName: "name"},
		generatedField{filterType: resources.NumberFilterType, alias: "age", fieldName: "age"},
		generatedField{filterType: resources.BooleanFilterType, alias: "isActive", fieldName: "is_active"},
		generatedField{filterType: resources.CustomFilterType, alias: "publicKey", fieldName: "public_key"},
		generatedField{
			filterType: resources.CustomFilterType,
			alias:      "adult",
			fieldName:  "age",
			condition:  strPtr(`"age" >= 18 OR "guardian" = ${adult}`),
		},
	)
}

func TestWhereEveryGeneratedKey(t *testing.T) {
	f, aliasOf := testFilters(t)

	testcases := []struct {
		key          string
		value        any
		expectedSQL  string
		expectedArgs []any
	}{
		{key: "name", value: "bob", expectedSQL: `"name" = ?`, expectedArgs: []any{"bob"}},
		{key: "name_eql", value: "bob", expectedSQL: `"name" = ?`, expectedArgs: []any{"bob"}},
		{key: "name_ne", value: "bob", expectedSQL: `"name" <> ?`, expectedArgs: []any{"bob"}},
		{key: "name_in", value: "bob,ann", expectedSQL: `"name" IN (?, ?)`, expectedArgs: []any{"bob", "ann"}},
		{key: "name_like", value: "b%", expectedSQL: `"name" LIKE (?)`, expectedArgs: []any{"b%"}},
		{key: "age", value: 30, expectedSQL: `"age" = ?`, expectedArgs: []any{30}},
		{key: "age_eql", value: 30, expectedSQL: `"age" = ?`, expectedArgs: []any{30}},
		{key: "age_ne", value: 30, expectedSQL: `"age" <> ?`, expectedArgs: []any{30}},
		{key: "age_gt", value: 30, expectedSQL: `"age" > ?`, expectedArgs: []any{30}},
		{key: "age_gte", value: 30, expectedSQL: `"age" >= ?`, expectedArgs: []any{30}},
		{key: "age_lt", value: 30, expectedSQL: `"age" < ?`, expectedArgs: []any{30}},
		{key: "age_lte", value: 30, expectedSQL: `"age" <= ?`, expectedArgs: []any{30}},
		{key: "age_in", value: []int{1, 2}, expectedSQL: `"age" IN (?, ?)`, expectedArgs: []any{1, 2}},
		{key: "isActive", value: true, expectedSQL: `"is_active" = ?`, expectedArgs: []any{true}},
		{key: "isActive_eql", value: true, expectedSQL: `"is_active" = ?`, expectedArgs: []any{true}},
		{key: "isActive_ne", value: true, expectedSQL: `"is_active" <> ?`, expectedArgs: []any{true}},
		{key: "publicKey", value: "aa", expectedSQL: `"public_key" = ?`, expectedArgs: []any{"aa"}},
		{key: "adult", value: true, expectedSQL: `"age" >= 18 OR "guardian" = ?`, expectedArgs: []any{true}},
	}

	require.Len(t, f, len(testcases))

	for _, tc := range testcases {
		t.Run(tc.key, func(t *testing.T) {
			clause, err := Where(f, aliasOf, resources.FilterGroup{tc.key: tc.value})
			require.NoError(t, err)
			assert.Equal(t, tc.expectedSQL, clause.SQL)
			assert.Equal(t, tc.expectedArgs, clause.Args)
		})
	}
}

func TestWhereWithoutResolverOnlyBindsKeys(t *testing.T) {
	f, _ := testFilters(t)

	_, err := Where(f, nil, resources.FilterGroup{"age_gt": 30})
	assert.ErrorIs(t, err, errs.ErrMissingFilterValue)

	clause, err := Where(f, nil, resources.FilterGroup{"age_in": "1,2"})
	require.NoError(t, err)
	assert.Equal(t, `"age" IN (?, ?)`, clause.SQL)
}

func TestWhereSingleGroup(t *testing.T) {
	f, aliasOf := testFilters(t)

	clause, err := Where(f, aliasOf, resources.FilterGroup{"age_gte": 18, "age_lt": 65, "name": "bob"})
	require.NoError(t, err)
	assert.Equal(t, `("age" >= ?) AND ("age" < ?) AND ("name" = ?)`, clause.SQL)
	assert.Equal(t, []any{18, 65, "bob"}, clause.Args)
}

func TestWhereGroupsAreJoinedWithOr(t *testing.T) {
	f, aliasOf := testFilters(t)

	clause, err := Where(f, aliasOf,
		resources.FilterGroup{"name": "a"},
		resources.FilterGroup{"name_in": "x,y", "age_ne": 3},
	)
	require.NoError(t, err)
	assert.Equal(t, `("name" = ?) OR (("age" <> ?) AND ("name" IN (?, ?)))`, clause.SQL)
	assert.Equal(t, []any{"a", 3, "x", "y"}, clause.Args)
}

func TestWhereRawConditionIsParenthesised(t *testing.T) {
	f, aliasOf := testFilters(t)

	clause, err := Where(f, aliasOf, resources.FilterGroup{"adult": true, "name": "bob"})
	require.NoError(t, err)
	assert.Equal(t, `("age" >= 18 OR "guardian" = ?) AND ("name" = ?)`, clause.SQL)
	assert.Equal(t, []any{true, "bob"}, clause.Args)
}

func TestWhereUnknownFilters(t *testing.T) {
	f, aliasOf := testFilters(t)

	_, err := Where(f, aliasOf,
		resources.FilterGroup{"zzz": 1, "name": "a"},
		resources.FilterGroup{"nope": 2, "zzz": 3},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNonSupportedFilter))
	assert.EqualError(t, err, "One or more filters are not supported: nope, zzz")
}

func TestWhereWithoutGroups(t *testing.T) {
	f, aliasOf := testFilters(t)

	clause, err := Where(f, aliasOf)
	assert.NoError(t, err)
	assert.Nil(t, clause)

	clause, err = Where(f, aliasOf, resources.FilterGroup{})
	assert.NoError(t, err)
	assert.Nil(t, clause)
}
