package battleship

// Player is one side of a game: the fleet it defends and the tally of
// the shots it has fired at the other side.
type Player struct {
	isComputer bool
	board      *Board
	hits       int
	misses     int
}

func NewPlayer(isComputer bool, board *Board) *Player {
	return &Player{
		isComputer: isComputer,
		board:      board,
		hits:       0,
		misses:     0,
	}
}

func (p *Player) IsComputer() bool {
	return p.isComputer
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) setBoard(board *Board) {
	p.board = board
}

func (p *Player) Hits() int {
	return p.hits
}

func (p *Player) Misses() int {
	return p.misses
}

// Repeats are not shots and leave the tally alone.
func (p *Player) recordShot(result ShotResult) {
	switch result {
	case ShotResultHit:
		p.hits++
	case ShotResultMiss:
		p.misses++
	}
}

func (p *Player) IsLoser() bool {
	return p.board.IsDefeated()
}
