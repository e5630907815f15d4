package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "propgen.dev/pkg/propgen/internal/model"
)

var fixedNow = time.Date(2024, time.March, 5, 7, 9, 0, 0, time.UTC)

func newTestRenderer() Renderer {
	cfg := DefaultTemplateConfig()
	cfg.Now = func() time.Time { return fixedNow }

	return NewRenderer(cfg)
}

func playerSpec() m.ClassSpec {
	mutators := m.NewMutatorSet()
	mutators.Put(m.Mutator{Type: m.CoercionDouble, Name: "health"})

	return m.ClassSpec{
		ClassName: "Player",
		Accessors: []m.Accessor{{Signature: "isOnline()", Name: "online"}},
		Mutators:  mutators,
	}
}

const expectedPlayerProperty = `package com.mcstarrysky.aiyatsbus.module.kether.property.bukkit.Player

import com.mcstarrysky.aiyatsbus.module.kether.AiyatsbusGenericProperty
import com.mcstarrysky.aiyatsbus.module.kether.AiyatsbusProperty
import org.bukkit.Player
import taboolib.common.OpenResult

/**
 * Aiyatsbus
 * com.mcstarrysky.aiyatsbus.module.kether.property.bukkit.Player
 *
 * @author yanshiqwq
 * @since 2024/3/5 07:09
 *
 * # Generated by AiyatsBusPropertyGenerator #
 *
 */
@AiyatsbusProperty(
    id = "player",
    bind = Player::class
)
class PropertyPlayer : AiyatsbusGenericProperty<Player>("player") {

    override fun readProperty(instance: Player, key: String): OpenResult {
        val property: Any? = when (key) {
            "online" -> instance.online
            else -> return OpenResult.failed()
        }
        return OpenResult.successful(property)
    }

    override fun writeProperty(instance: Player, key: String, value: Any?): OpenResult {
        when (key) {
            "health" -> instance.health = value?.coerceDouble() ?: return OpenResult.failed()
            else -> return OpenResult.failed()
        }
        return OpenResult.successful()
    }
}
`

func TestRenderer_Player(t *testing.T) {
	out, err := newTestRenderer().Render("org.bukkit", playerSpec())
	require.NoError(t, err)

	assert.Equal(t, expectedPlayerProperty, string(out))
}

func TestRenderer_NoMutatorsAlwaysFailsWrites(t *testing.T) {
	spec := playerSpec()
	spec.Mutators = m.NewMutatorSet()

	out, err := newTestRenderer().Render("org.bukkit", spec)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "    override fun writeProperty(instance: Player, key: String, value: Any?): OpenResult {\n"+
		"        return OpenResult.failed()\n"+
		"    }\n}\n")
	assert.NotContains(t, text, "return OpenResult.successful()\n")
	assert.Equal(t, 1, strings.Count(text, "when (key)"))
}

func TestRenderer_NilMutatorSet(t *testing.T) {
	spec := playerSpec()
	spec.Mutators = nil

	out, err := newTestRenderer().Render("org.bukkit", spec)
	require.NoError(t, err)
	assert.Contains(t, string(out), "        return OpenResult.failed()\n    }\n}\n")
}

func TestRenderer_DispatchOrder(t *testing.T) {
	mutators := m.NewMutatorSet()
	mutators.Put(m.Mutator{Type: m.CoercionInt, Name: "count"})
	mutators.Put(m.Mutator{Type: m.CoercionBoolean, Name: "flying"})
	mutators.Put(m.Mutator{Type: m.CoercionInt, Name: "limit"})

	spec := m.ClassSpec{
		ClassName: "PlayerJoinEvent",
		Accessors: []m.Accessor{{Name: "player"}, {Name: "joinMessage"}, {Name: "player"}},
		Mutators:  mutators,
	}

	out, err := newTestRenderer().Render("org.bukkit.event.player", spec)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, `        val property: Any? = when (key) {
            "player" -> instance.player
            "joinMessage" -> instance.joinMessage
            "player" -> instance.player
            else -> return OpenResult.failed()
        }`)
	assert.Contains(t, text, `        when (key) {
            "limit" -> instance.limit = value?.coerceInt() ?: return OpenResult.failed()
            "flying" -> instance.flying = value?.coerceBoolean() ?: return OpenResult.failed()
            else -> return OpenResult.failed()
        }`)
	assert.NotContains(t, text, `"count"`)
	assert.Contains(t, text, `id = "player-join-event"`)
	assert.Contains(t, text, `class PropertyPlayerJoinEvent : AiyatsbusGenericProperty<PlayerJoinEvent>("player-join-event")`)
	assert.Contains(t, text, "import org.bukkit.event.player.PlayerJoinEvent\n")
}

func TestRenderer_Deterministic(t *testing.T) {
	renderer := newTestRenderer()

	first, err := renderer.Render("org.bukkit", playerSpec())
	require.NoError(t, err)

	second, err := renderer.Render("org.bukkit", playerSpec())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderer_TimestampIsDisplayOnly(t *testing.T) {
	later := DefaultTemplateConfig()
	later.Now = func() time.Time { return fixedNow.Add(36 * time.Hour) }

	first, err := newTestRenderer().Render("org.bukkit", playerSpec())
	require.NoError(t, err)

	second, err := NewRenderer(later).Render("org.bukkit", playerSpec())
	require.NoError(t, err)

	assert.Contains(t, string(second), " * @since 2024/3/6 19:09\n")
	assert.Equal(t, stripSince(string(first)), stripSince(string(second)))
}

func TestRenderer_CustomHeader(t *testing.T) {
	cfg := TemplateConfig{
		BasePackage:      "org.example.props",
		FrameworkPackage: "org.example.kether",
		Author:           "someone",
		Now:              func() time.Time { return fixedNow },
	}

	out, err := NewRenderer(cfg).Render("org.bukkit", playerSpec())
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "package org.example.props.Player\n"))
	assert.Contains(t, text, "import org.example.kether.AiyatsbusProperty\n")
	assert.Contains(t, text, " * @author someone\n")
}

func stripSince(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]

	for _, line := range lines {
		if !strings.HasPrefix(line, " * @since ") {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}
