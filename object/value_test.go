package object

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Binary{1}, Binary{1}))
	assert.False(t, Equal(Binary{1}, List{Int(1)}))
	assert.False(t, Equal(Int(1), Float(1)))
	assert.False(t, Equal(Float(math.NaN()), Float(math.NaN())))
	assert.True(t, Equal(List{Null{}, String("x")}, List{Null{}, String("x")}))
	assert.False(t, Equal(List{Null{}}, List{Null{}, Null{}}))
	assert.True(t, Equal(DateFromDays(1), DateFromDays(1)))
	assert.False(t, Equal(TimestampFromMillis(1), TimestampFromMillis(2)))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, Null{}))
}

func TestClone(t *testing.T) {
	bin := Binary{1, 2}
	clone := Clone(bin).(Binary)
	clone[0] = 9
	assert.Equal(t, Binary{1, 2}, bin)

	list := List{Binary{1}, List{Int(1)}}
	listClone := Clone(list).(List)
	listClone[0].(Binary)[0] = 9
	listClone[1].(List)[0] = Int(2)
	assert.True(t, Equal(List{Binary{1}, List{Int(1)}}, list))

	assert.Equal(t, Null{}, Clone(nil))
	assert.Equal(t, KindNull.String(), Null{}.Kind().String())
	assert.Equal(t, "timestamp", KindTimestamp.String())
}
