package roster

type Level string

const (
	LevelTrainee             Level = "Trainee"
	LevelAprendiz            Level = "Aprendiz"
	LevelRecreador           Level = "Recreador(a)"
	LevelRecreadorExperiente Level = "Recreador(a) Experiente"
	LevelCoordenador         Level = "Coordenador(a)"
)

// Levels lists the rank labels in ascending seniority order.
var Levels = []Level{
	LevelTrainee,
	LevelAprendiz,
	LevelRecreador,
	LevelRecreadorExperiente,
	LevelCoordenador,
}

var levelRanks = func() map[Level]int {
	ranks := make(map[Level]int, len(Levels))
	for i, level := range Levels {
		ranks[level] = i
	}
	return ranks
}()

func (l Level) Valid() bool {
	_, ok := levelRanks[l]
	return ok
}

// Rank returns the position in the seniority order; unknown labels sort last.
func (l Level) Rank() int {
	if rank, ok := levelRanks[l]; ok {
		return rank
	}
	return len(Levels)
}
