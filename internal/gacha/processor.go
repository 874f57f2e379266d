package gacha

import (
	"fmt"

	"github.com/tacticbot/tacticbot/internal/catalog"
	"github.com/tacticbot/tacticbot/internal/domain"
)

// ============================================================================
// Rarity selection (built once, read-only thereafter)
// ============================================================================

// rarityEntry is one rarity with its cumulative weight for weighted selection.
type rarityEntry struct {
	Rarity      domain.Rarity
	CumulWeight int // cumulative weight up to and including this entry
}

// rarityTable is the flattened acquisition distribution.
type rarityTable struct {
	Entries     []rarityEntry
	TotalWeight int
}

func buildRarityTable() *rarityTable {
	t := &rarityTable{}
	for _, w := range catalog.RarityWeights {
		t.TotalWeight += w.Weight
		t.Entries = append(t.Entries, rarityEntry{Rarity: w.Rarity, CumulWeight: t.TotalWeight})
	}
	return t
}

// selectRarity returns the rarity chosen by a weighted roll in [0, TotalWeight).
func (t *rarityTable) selectRarity(rnd float64) domain.Rarity {
	roll := int(rnd * float64(t.TotalWeight))
	lo, hi := 0, len(t.Entries)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if t.Entries[mid].CumulWeight <= roll {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return t.Entries[lo].Rarity
}

// ============================================================================
// Template and name rolls
// ============================================================================

// pickTemplate chooses uniformly among the templates of the rolled rarity,
// walking down the rarity tiers when a tier has no stored templates. A
// legendary roll with no stored legendaries lands on a built-in archetype.
func pickTemplate(templates []domain.UnitTemplate, rarity domain.Rarity, rnd func() float64) domain.UnitTemplate {
	byRarity := make(map[domain.Rarity][]domain.UnitTemplate)
	for _, t := range templates {
		byRarity[t.Rarity] = append(byRarity[t.Rarity], t)
	}

	if rarity == domain.RarityLegendary && len(byRarity[rarity]) == 0 {
		role := domain.Roles[int(rnd()*float64(len(domain.Roles)))%len(domain.Roles)]
		return catalog.LegendaryTemplate(role)
	}

	for i := rarity.Order(); i >= 0; i-- {
		pool := byRarity[domain.Rarities[i]]
		if len(pool) == 0 {
			continue
		}
		tpl := pool[int(rnd()*float64(len(pool)))%len(pool)]
		// The unit keeps the rolled rarity even when the name came from a
		// lower tier, so the paid-for stat scaling is honored.
		tpl.Rarity = rarity
		return tpl
	}

	// Empty template table altogether; fall back to the built-in roster.
	pool := catalog.DefaultTemplates
	tpl := pool[int(rnd()*float64(len(pool)))%len(pool)]
	tpl.Rarity = rarity
	return tpl
}

// rollWeaponType chooses a weapon archetype uniformly.
func rollWeaponType(rnd func() float64) domain.WeaponType {
	types := catalog.AllWeaponTypes()
	return types[int(rnd()*float64(len(types)))%len(types)]
}

// composeWeaponName builds a weapon name from the rarity prefix pool and the
// type suffix pool. Legendary rolls may land on a unique name instead.
func composeWeaponName(wt domain.WeaponType, rarity domain.Rarity, rnd func() float64) string {
	if rarity == domain.RarityLegendary && rnd() < SpecialNameChance {
		if specials := catalog.SpecialNames(wt); len(specials) > 0 {
			return specials[int(rnd()*float64(len(specials)))%len(specials)]
		}
	}

	prefixes := catalog.NamePrefixes(rarity)
	suffixes := catalog.NameSuffixes(wt)
	prefix := prefixes[int(rnd()*float64(len(prefixes)))%len(prefixes)]
	suffix := suffixes[int(rnd()*float64(len(suffixes)))%len(suffixes)]
	return fmt.Sprintf("%s %s", prefix, suffix)
}
