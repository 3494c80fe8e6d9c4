package conditions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchDirectTerm(t *testing.T) {
	links := Match("what are common flu symptoms?")
	require.Len(t, links, 2)
	assert.Equal(t, "MedlinePlus", links[0].Provider)
	assert.Equal(t, "https://medlineplus.gov/flu.html", links[0].URL)
	assert.Equal(t, "CDC", links[1].Provider)
}

func TestMatchSynonym(t *testing.T) {
	links := Match("is influenza dangerous for the elderly")
	require.NotEmpty(t, links)
	assert.Contains(t, links[0].URL, "/flu.html")
}

func TestMatchMultiWordPhrase(t *testing.T) {
	links := Match("my mother has high blood pressure")
	require.NotEmpty(t, links)
	assert.Contains(t, links[0].URL, "/hypertension.html")
}

func TestMatchRequiresWordBoundary(t *testing.T) {
	// "cold" must not fire inside another word.
	assert.Nil(t, Match("I love coldplay concerts"))
	assert.NotNil(t, Match("I caught a cold"))
}

func TestMatchFirstConditionWins(t *testing.T) {
	// Both flu and fever appear; the table orders flu first.
	links := Match("flu with a fever")
	require.NotEmpty(t, links)
	assert.Contains(t, links[0].URL, "/flu.html")
}

func TestMatchNoCondition(t *testing.T) {
	assert.Nil(t, Match("how do airplanes fly"))
	assert.Nil(t, Match("   "))
}
