package service

import (
	"math"

	"caseload-api/modules/ling6/entity"
)

// responseRank orders responses so the best one wins per sound. Higher is
// better.
func responseRank(r entity.Response) int {
	switch r {
	case entity.ResponseIdentified:
		return 3
	case entity.ResponseDetected:
		return 2
	case entity.ResponseIncorrect:
		return 1
	case entity.ResponseNoResponse:
		return 0
	default:
		return -1
	}
}

func statusFromResponse(r entity.Response) entity.SoundStatus {
	switch r {
	case entity.ResponseIdentified:
		return entity.StatusIdentified
	case entity.ResponseDetected:
		return entity.StatusDetected
	case entity.ResponseIncorrect:
		return entity.StatusIncorrect
	default:
		return entity.StatusNoResponse
	}
}

// ComputeSummary reduces a session's trials to one result per sound and the
// aggregate counts. A sound with no trials is not_tested; the best response
// wins regardless of trial order. Percentages are rounded and 0 when nothing
// was tested. Pure.
func ComputeSummary(trials []entity.Ling6Trial) entity.Summary {
	type acc struct {
		best   entity.Response
		trials int
	}
	bySound := map[entity.Sound]*acc{}

	for _, trial := range trials {
		if responseRank(trial.Response) < 0 {
			continue
		}
		a, ok := bySound[trial.Sound]
		if !ok {
			bySound[trial.Sound] = &acc{best: trial.Response, trials: 1}
			continue
		}
		a.trials++
		if responseRank(trial.Response) > responseRank(a.best) {
			a.best = trial.Response
		}
	}

	summary := entity.Summary{
		Sounds: make([]entity.SoundResult, 0, len(entity.AllSounds)),
	}
	for _, sound := range entity.AllSounds {
		result := entity.SoundResult{Sound: sound, Status: entity.StatusNotTested}
		if a, ok := bySound[sound]; ok {
			result.Status = statusFromResponse(a.best)
			result.Trials = a.trials

			summary.TestedCount++
			switch a.best {
			case entity.ResponseIdentified:
				summary.IdentifiedCount++
				summary.DetectedCount++
			case entity.ResponseDetected:
				summary.DetectedCount++
			}
		}
		summary.Sounds = append(summary.Sounds, result)
	}

	if summary.TestedCount > 0 {
		summary.DetectedPct = int(math.Round(100 * float64(summary.DetectedCount) / float64(summary.TestedCount)))
		summary.IdentifiedPct = int(math.Round(100 * float64(summary.IdentifiedCount) / float64(summary.TestedCount)))
	}
	return summary
}
