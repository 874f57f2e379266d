package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Players
-- Units and weapons live in JSONB documents; the whole inventory is read
-- and written as one record.
CREATE TABLE IF NOT EXISTS players (
    player_id VARCHAR(64) PRIMARY KEY,
    balance INTEGER NOT NULL DEFAULT 0,
    last_daily TIMESTAMPTZ,
    units JSONB NOT NULL DEFAULT '[]',
    weapons JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_players_balance ON players (balance DESC);

-- Unit Templates
-- The roster of named archetypes acquisition rolls draw from.
CREATE TABLE IF NOT EXISTS unit_templates (
    template_id SERIAL PRIMARY KEY,
    name VARCHAR(100) UNIQUE NOT NULL,
    role VARCHAR(20) NOT NULL,
    rarity VARCHAR(20) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_unit_templates_rarity ON unit_templates (rarity);

-- Battle Records
-- Finished battles only; live sessions are in-memory.
CREATE TABLE IF NOT EXISTS battles (
    battle_id UUID PRIMARY KEY,
    challenger_id VARCHAR(64) NOT NULL,
    opponent_id VARCHAR(64) NOT NULL,
    winner_id VARCHAR(64) NOT NULL,
    location VARCHAR(100) NOT NULL DEFAULT '',
    turn_count INTEGER NOT NULL DEFAULT 0,
    surrendered BOOLEAN NOT NULL DEFAULT FALSE,
    reward INTEGER NOT NULL DEFAULT 0,
    started_at TIMESTAMPTZ NOT NULL,
    ended_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_battles_challenger ON battles (challenger_id, ended_at DESC);
CREATE INDEX IF NOT EXISTS idx_battles_opponent ON battles (opponent_id, ended_at DESC);
`
