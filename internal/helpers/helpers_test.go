package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")
	id := primitive.NewObjectID()

	token, err := tm.Issue(id.Hex(), "Ann", "//avatar")
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), claims.ID)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, "//avatar", claims.Avatar)
	assert.True(t, claims.IsOwner(id))

	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, id, uid)

	_, err = tm.Verify(BearerPrefix + token)
	assert.NoError(t, err, "bearer prefix is tolerated")
}

func TestTokenExpiresAfterOneHour(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret").WithClock(func() time.Time { return issued })

	token, err := tm.Issue(primitive.NewObjectID().Hex(), "Ann", "")
	require.NoError(t, err)

	claims, err := tm.WithClock(func() time.Time { return issued.Add(59 * time.Minute) }).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(TokenTTL).Unix(), claims.ExpiresAt.Unix())

	_, err = tm.WithClock(func() time.Time { return issued.Add(61 * time.Minute) }).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsWrongSecretAndGarbage(t *testing.T) {
	token, err := NewTokenManager("one").Issue(primitive.NewObjectID().Hex(), "Ann", "")
	require.NoError(t, err)

	_, err = NewTokenManager("two").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("one").Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGravatarURL(t *testing.T) {
	got := GravatarURL("  Ann@X.com ")
	assert.Equal(t, GravatarURL("ann@x.com"), got)
	assert.True(t, strings.HasPrefix(got, "//www.gravatar.com/avatar/"))
	assert.True(t, strings.HasSuffix(got, "?s=200&r=pg&d=mm"))
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"go", "sql", "docker"}, SplitSkills("go, sql,,docker "))
	assert.Equal(t, []string{}, SplitSkills(""))
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}
