package storage

import (
	"os"
	"testing"
	"time"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorageAt(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	s := openTestStorage(t)

	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.Difficulty != DifficultyMedium {
			t.Errorf("Expected medium difficulty")
		}
		if !prefs.SoundEnabled {
			t.Errorf("Expected sound enabled by default")
		}
	})

	t.Run("FirstLaunch", func(t *testing.T) {
		first, err := s.IsFirstLaunch()
		if err != nil {
			t.Fatalf("IsFirstLaunch failed: %v", err)
		}
		if !first {
			t.Error("Fresh database should report first launch")
		}
		if err := s.MarkFirstLaunchComplete(); err != nil {
			t.Fatalf("MarkFirstLaunchComplete failed: %v", err)
		}
		first, err = s.IsFirstLaunch()
		if err != nil {
			t.Fatalf("IsFirstLaunch failed: %v", err)
		}
		if first {
			t.Error("First launch should be complete")
		}
	})

	t.Run("PreferencesRoundTrip", func(t *testing.T) {
		prefs := DefaultPreferences()
		prefs.Username = "Hein"
		prefs.Difficulty = DifficultyHard
		prefs.PlayerColor = ColorBlack
		if err := s.SavePreferences(prefs); err != nil {
			t.Fatalf("SavePreferences failed: %v", err)
		}

		loaded, err := s.LoadPreferences()
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if loaded.Username != "Hein" || loaded.Difficulty != DifficultyHard || loaded.PlayerColor != ColorBlack {
			t.Errorf("Loaded preferences do not match: %+v", loaded)
		}
	})

	t.Run("RecordGame", func(t *testing.T) {
		results := []GameResult{
			{Won: true, Mode: ModeHumanVsComputer, Difficulty: DifficultyMedium, Duration: time.Minute},
			{Won: true, Mode: ModeHumanVsComputer, Difficulty: DifficultyMedium, Duration: time.Minute},
			{Draw: true, Mode: ModeHumanVsComputer, Difficulty: DifficultyMedium},
			{Mode: ModeHumanVsHuman},
		}
		for _, r := range results {
			if err := s.RecordGame(r); err != nil {
				t.Fatalf("RecordGame failed: %v", err)
			}
		}

		stats, err := s.LoadStats()
		if err != nil {
			t.Fatalf("LoadStats failed: %v", err)
		}
		if stats.GamesPlayed != 4 || stats.Wins != 2 || stats.Draws != 1 || stats.Losses != 1 {
			t.Errorf("Unexpected stats: %+v", stats)
		}
		if stats.LongestWinStrk != 2 {
			t.Errorf("Expected win streak 2, got %d", stats.LongestWinStrk)
		}
		if stats.WinsByDiff["medium"] != 2 {
			t.Errorf("Expected 2 medium wins, got %d", stats.WinsByDiff["medium"])
		}
		if rate := stats.GetWinRate(); rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestGameRecords(t *testing.T) {
	s := openTestStorage(t)

	rec := &GameRecord{
		Moves:  []string{"32-28", "19-23", "28x19", "14x23"},
		Result: "1-1",
		Mode:   ModeHumanVsComputer,
	}
	if err := s.SaveGame(rec); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("SaveGame did not assign an ID")
	}

	loaded, err := s.LoadGame(rec.ID)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if len(loaded.Moves) != 4 || loaded.Moves[2] != "28x19" || loaded.Result != "1-1" {
		t.Errorf("Loaded record does not match: %+v", loaded)
	}

	games, err := s.ListGames()
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("Expected 1 saved game, got %d", len(games))
	}

	if err := s.DeleteGame(rec.ID); err != nil {
		t.Fatalf("DeleteGame failed: %v", err)
	}
	games, err = s.ListGames()
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("Expected no saved games after delete, got %d", len(games))
	}
}

func TestDataPaths(t *testing.T) {
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	t.Logf("Data directory: %s", dataDir)
}
