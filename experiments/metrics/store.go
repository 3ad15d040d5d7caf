package metrics

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var ErrNoRecord = errors.New("no record")

// Store persists finished games per experiment so an interrupted experiment
// can resume where it stopped.
type Store struct {
	db *badger.DB
}

type storedGame struct {
	Game  GameRecord   `json:"game"`
	Moves []MoveRecord `json:"moves"`
}

// OpenStore opens a badger database in dir, or an in-memory one if dir is
// empty.
func OpenStore(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gamePrefix(experiment string) []byte {
	return []byte("experiment/" + experiment + "/game/")
}

func gameKey(experiment string, id int) []byte {
	return append(gamePrefix(experiment), fmt.Sprintf("%08d", id)...)
}

func (s *Store) SaveGame(experiment string, game GameRecord, moves []MoveRecord) error {
	data, err := json.Marshal(storedGame{Game: game, Moves: moves})
	if err != nil {
		return fmt.Errorf("failed to encode game %d: %w", game.ID, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(experiment, game.ID), data)
	})
}

// Game returns one stored game with its moves, or ErrNoRecord.
func (s *Store) Game(experiment string, id int) (GameRecord, []MoveRecord, error) {
	var stored storedGame

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(experiment, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: experiment %s game %d", ErrNoRecord, experiment, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})

	return stored.Game, stored.Moves, err
}

// Games returns every stored game of an experiment in ID order.
func (s *Store) Games(experiment string) ([]GameRecord, []MoveRecord, error) {
	var games []GameRecord
	var moves []MoveRecord

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := gamePrefix(experiment)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var stored storedGame
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			})
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", it.Item().Key(), err)
			}
			games = append(games, stored.Game)
			moves = append(moves, stored.Moves...)
		}
		return nil
	})

	return games, moves, err
}
