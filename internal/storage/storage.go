package storage

import (
	"context"

	"github.com/jwebster45206/initiative-tracker/pkg/bestiary"
	"github.com/jwebster45206/initiative-tracker/pkg/encounter"
	"github.com/jwebster45206/initiative-tracker/pkg/party"
)

// Storage persists encounter snapshots and serves the static bestiary
// and party resources. Lookups return (nil, nil) when the record does
// not exist.
type Storage interface {
	Ping(ctx context.Context) error
	Close() error

	// Encounter snapshots (Redis-backed). Snapshots are addressed by
	// the slug of their name; saving under an existing slug replaces
	// the previous snapshot.
	SaveEncounter(ctx context.Context, snap encounter.Snapshot) error
	LoadEncounter(ctx context.Context, slug string) (*encounter.Snapshot, error)
	ListEncounters(ctx context.Context) ([]encounter.Snapshot, error)
	DeleteEncounter(ctx context.Context, slug string) error

	// Bestiary templates (filesystem-backed)
	ListMonsters(ctx context.Context) (map[string]string, error)
	GetMonster(ctx context.Context, id string) (*bestiary.Monster, error)

	// Party member sheets (filesystem-backed)
	ListPartyMembers(ctx context.Context) ([]string, error)
	GetPartyMember(ctx context.Context, id string) (*party.MemberSpec, error)
}
