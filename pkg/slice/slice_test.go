// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-cms/pkg/slice"
)

/*
TestFilter keeps order and never returns nil.
*/
func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
	assert.NotNil(t, slice.Filter(nil, even))
	assert.Empty(t, slice.Filter([]int{1, 3}, even))
}

/*
TestMap transforms each element.
*/
func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.Empty(t, slice.Map(nil, strconv.Itoa))
}
