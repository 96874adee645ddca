package back

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// LoadFixtures creates default data for quick testing during development.
func (b *Back) LoadFixtures() error {
	playerNames := []string{"Urza", "Mishra", "Ashnod", "Gix"}
	commanders := []Commander{
		NewCommander("Atraxa, Praetors' Voice", "d0d33d52-3d28-4635-b985-51e126289259"),
		NewCommander("Edgar Markov", "8d94b8ec-ecda-43c8-a60e-1ba33e6a54a4"),
		NewCommander("The Ur-Dragon", "7e78b70b-0c67-4f14-8ad7-c9f8e3f59743"),
		NewCommander("Sélenia, Dark Angel", "c814a744-5483-4bf0-a1a3-46b50f291180"),
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		for _, v := range playerNames {
			player := NewPlayer(v)
			if err := player.insert(tx); err != nil {
				return err
			}
		}

		for _, v := range commanders {
			if err := v.insert(tx); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return err
	}

	_, _, err := b.SubmitGame(GameSubmission{
		PlayedAt: time.Now().AddDate(0, 0, -1),
		Winner:   "Urza",
		Commanders: map[string]string{
			"Urza":   "Atraxa, Praetors' Voice",
			"Mishra": "Edgar Markov",
			"Ashnod": "The Ur-Dragon",
		},
	})

	return err
}
