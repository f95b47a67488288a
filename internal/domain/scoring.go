package domain

import "fmt"

// ScaleItems is the number of items in the IPIP-50 questionnaire.
const ScaleItems = 50

// Likert answer bounds for each questionnaire item.
const (
	AnswerMin = 1
	AnswerMax = 5
)

// trait tags used by the scoring key.
const (
	traitO = "O"
	traitC = "C"
	traitE = "E"
	traitA = "A"
	traitN = "N"
)

// scaleItem is one entry of the IPIP-50 scoring key: the item text, the
// trait it loads on, and whether it is positively keyed. Positively
// keyed items score the raw answer; negatively keyed items score 6-a.
type scaleItem struct {
	Text     string
	Trait    string
	Positive bool
}

// ipip50Key is the IPIP Big Five factor marker scoring key. Items cycle
// E, A, C, N, O. Neuroticism is keyed directly (higher = more neurotic),
// so emotional-stability phrased items (9, 19) are the reversed ones.
var ipip50Key = [ScaleItems]scaleItem{
	{"Am the life of the party.", traitE, true},
	{"Feel little concern for others.", traitA, false},
	{"Am always prepared.", traitC, true},
	{"Get stressed out easily.", traitN, true},
	{"Have a rich vocabulary.", traitO, true},
	{"Don't talk a lot.", traitE, false},
	{"Am interested in people.", traitA, true},
	{"Leave my belongings around.", traitC, false},
	{"Am relaxed most of the time.", traitN, false},
	{"Have difficulty understanding abstract ideas.", traitO, false},
	{"Feel comfortable around people.", traitE, true},
	{"Insult people.", traitA, false},
	{"Pay attention to details.", traitC, true},
	{"Worry about things.", traitN, true},
	{"Have a vivid imagination.", traitO, true},
	{"Keep in the background.", traitE, false},
	{"Sympathize with others' feelings.", traitA, true},
	{"Make a mess of things.", traitC, false},
	{"Seldom feel blue.", traitN, false},
	{"Am not interested in abstract ideas.", traitO, false},
	{"Start conversations.", traitE, true},
	{"Am not interested in other people's problems.", traitA, false},
	{"Get chores done right away.", traitC, true},
	{"Am easily disturbed.", traitN, true},
	{"Have excellent ideas.", traitO, true},
	{"Have little to say.", traitE, false},
	{"Have a soft heart.", traitA, true},
	{"Often forget to put things back in their proper place.", traitC, false},
	{"Get upset easily.", traitN, true},
	{"Do not have a good imagination.", traitO, false},
	{"Talk to a lot of different people at parties.", traitE, true},
	{"Am not really interested in others.", traitA, false},
	{"Like order.", traitC, true},
	{"Change my mood a lot.", traitN, true},
	{"Am quick to understand things.", traitO, true},
	{"Don't like to draw attention to myself.", traitE, false},
	{"Take time out for others.", traitA, true},
	{"Shirk my duties.", traitC, false},
	{"Have frequent mood swings.", traitN, true},
	{"Use difficult words.", traitO, true},
	{"Don't mind being the center of attention.", traitE, true},
	{"Feel others' emotions.", traitA, true},
	{"Follow a schedule.", traitC, true},
	{"Get irritated easily.", traitN, true},
	{"Spend time reflecting on things.", traitO, true},
	{"Am quiet around strangers.", traitE, false},
	{"Make people feel at ease.", traitA, true},
	{"Am exacting in my work.", traitC, true},
	{"Often feel blue.", traitN, true},
	{"Am full of ideas.", traitO, true},
}

// ScoreIPIP50 scores a 50-item answer vector into a TraitProfile.
// Answers are Likert values 1..5 in questionnaire order. Each trait sums
// ten mapped items, so results land in [10, 50] by construction.
// A wrong-length vector or an out-of-range answer is a validation error.
func ScoreIPIP50(answers []int) (TraitProfile, error) {
	if len(answers) != ScaleItems {
		return TraitProfile{}, fmt.Errorf("%w: got %d answers, want %d",
			ErrAnswerCount, len(answers), ScaleItems)
	}

	sums := map[string]int{}
	for i, a := range answers {
		if a < AnswerMin || a > AnswerMax {
			return TraitProfile{}, fmt.Errorf("%w: item %d answer %d",
				ErrAnswerRange, i+1, a)
		}
		item := ipip50Key[i]
		mapped := a
		if !item.Positive {
			mapped = AnswerMax + AnswerMin - a
		}
		sums[item.Trait] += mapped
	}

	return TraitProfile{
		Openness:          sums[traitO],
		Conscientiousness: sums[traitC],
		Extraversion:      sums[traitE],
		Agreeableness:     sums[traitA],
		Neuroticism:       sums[traitN],
	}, nil
}
