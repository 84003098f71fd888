package entity

// Tally counts game results over one session. Counters only grow.
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Record attributes a finished game to the right counter. Unfinished games are ignored.
func (that *Tally) Record(game *Game) {
	switch {
	case game.HumanWon():
		that.Wins++
	case game.ComputerWon():
		that.Losses++
	case game.IsTie():
		that.Ties++
	}
}

// Games is the number of finished games counted so far.
func (that *Tally) Games() int {
	return that.Wins + that.Losses + that.Ties
}
