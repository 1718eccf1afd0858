package survey

import "roadrisk/internal/domain"

// Section IDs. The eight driving-style sections map one-to-one onto
// classifier features of the same name; the four behaviour sections map onto
// the errors/violations/lapses features, with both slips and mistakes
// feeding the single errors feature.
const (
	SectionDissociative      = "dissociative"
	SectionAnxious           = "anxious"
	SectionRisky             = "risky"
	SectionAngry             = "angry"
	SectionHighVelocity      = "high_velocity"
	SectionDistressReduction = "distress_reduction"
	SectionPatient           = "patient"
	SectionCareful           = "careful"
	SectionSlips             = "slips"
	SectionMistakes          = "mistakes"
	SectionViolations        = "violations"
	SectionLapses            = "lapses"
)

// AnswerOption is one point on the ordinal answer scale.
type AnswerOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// AnswerOptions is the fixed 0..5 scale every question is answered on.
var AnswerOptions = []AnswerOption{
	{Value: 0, Label: "Never"},
	{Value: 1, Label: "Rarely"},
	{Value: 2, Label: "Occasionally"},
	{Value: 3, Label: "Sometimes"},
	{Value: 4, Label: "Often"},
	{Value: 5, Label: "Always"},
}

// Sections is the full question bank in traversal order. Immutable after
// package initialization; treat as read-only.
var Sections = []domain.Section{
	{
		ID:    SectionDissociative,
		Title: "Attention while driving",
		Questions: []domain.Question{
			{ID: 1, Text: "I find myself driving on 'autopilot' and arriving without remembering the journey."},
			{ID: 2, Text: "I daydream to pass the time while driving."},
			{ID: 3, Text: "I miss my exit because my mind was elsewhere."},
			{ID: 4, Text: "I stay focused on the road even on familiar routes.", Reversed: true},
		},
	},
	{
		ID:    SectionAnxious,
		Title: "Anxiety behind the wheel",
		Questions: []domain.Question{
			{ID: 5, Text: "I feel tense or nervous when driving in heavy traffic."},
			{ID: 6, Text: "Driving in bad weather makes me anxious enough to affect my driving."},
			{ID: 7, Text: "I worry about being involved in an accident while driving."},
		},
	},
	{
		ID:    SectionRisky,
		Title: "Risk seeking",
		Questions: []domain.Question{
			{ID: 8, Text: "I enjoy the thrill of taking corners at speed."},
			{ID: 9, Text: "I overtake even when I am not certain the road ahead is clear."},
			{ID: 10, Text: "I like to take risks while driving to make the trip less boring."},
		},
	},
	{
		ID:    SectionAngry,
		Title: "Anger and hostility",
		Questions: []domain.Question{
			{ID: 11, Text: "I honk or flash my lights at drivers who annoy me."},
			{ID: 12, Text: "When another driver cuts me off, I swear or gesture at them."},
			{ID: 13, Text: "I tailgate drivers who are going slower than I want to go."},
		},
	},
	{
		ID:    SectionHighVelocity,
		Title: "Time pressure and speed",
		Questions: []domain.Question{
			{ID: 14, Text: "I drive over the speed limit when I am running late."},
			{ID: 15, Text: "In a traffic jam, I weave between lanes to get ahead."},
			{ID: 16, Text: "I get impatient waiting at red lights and pull away as fast as possible."},
		},
	},
	{
		ID:    SectionDistressReduction,
		Title: "Coping with stress on the road",
		Questions: []domain.Question{
			{ID: 17, Text: "When a drive becomes stressful, I do relaxing things to calm myself down.", Reversed: true},
			{ID: 18, Text: "I use breathing or music to settle my nerves in difficult traffic.", Reversed: true},
			{ID: 19, Text: "After a near miss, I take a moment to compose myself before driving on.", Reversed: true},
		},
	},
	{
		ID:    SectionPatient,
		Title: "Patience",
		Questions: []domain.Question{
			{ID: 20, Text: "I wait calmly when a pedestrian crosses slowly in front of me.", Reversed: true},
			{ID: 21, Text: "I let merging cars in even when traffic is heavy.", Reversed: true},
			{ID: 22, Text: "Slow drivers ahead of me do not make me lose my temper.", Reversed: true},
		},
	},
	{
		ID:    SectionCareful,
		Title: "Carefulness",
		Questions: []domain.Question{
			{ID: 23, Text: "I plan long journeys in advance, including rest stops.", Reversed: true},
			{ID: 24, Text: "I slow down approaching an intersection even when I have right of way.", Reversed: true},
			{ID: 25, Text: "I keep a safe following distance from the car in front.", Reversed: true},
		},
	},
	{
		ID:    SectionSlips,
		Title: "Attention slips",
		Questions: []domain.Question{
			{ID: 26, Text: "I attempt to pull away in third gear or with the handbrake on."},
			{ID: 27, Text: "I switch on the wrong control, such as wipers instead of indicators."},
			{ID: 28, Text: "I misread signs and take the wrong turn off a roundabout."},
			{ID: 29, Text: "I forget where I parked my car."},
		},
	},
	{
		ID:    SectionMistakes,
		Title: "Judgement mistakes",
		Questions: []domain.Question{
			{ID: 30, Text: "I underestimate the speed of an oncoming vehicle when overtaking."},
			{ID: 31, Text: "I brake too hard on a slippery road or steer the wrong way in a skid."},
			{ID: 32, Text: "I fail to notice a pedestrian waiting at a crossing."},
			{ID: 33, Text: "When turning, I nearly hit a cyclist who has come up on my inside."},
		},
	},
	{
		ID:    SectionViolations,
		Title: "Deliberate violations",
		Questions: []domain.Question{
			{ID: 34, Text: "I cross an intersection knowing the light has already turned red."},
			{ID: 35, Text: "I disregard the speed limit on a motorway."},
			{ID: 36, Text: "I drive even when I suspect I may be over the legal alcohol limit."},
			{ID: 37, Text: "I use my phone in hand while driving."},
		},
	},
	{
		ID:    SectionLapses,
		Title: "Memory lapses",
		Questions: []domain.Question{
			{ID: 38, Text: "I realize I have no clear memory of the road I have just travelled."},
			{ID: 39, Text: "I set out to drive somewhere and only later realize I am on my usual route instead."},
			{ID: 40, Text: "I forget which lane I need until it is almost too late to change."},
		},
	},
}

// sectionFeatures wires section means into classifier features. The errors
// feature is the only one fed by two sections; this cross-wiring matches
// what the remote classifier was trained on and must not be simplified.
var sectionFeatures = map[string][]string{
	domain.FeatureDissociative:      {SectionDissociative},
	domain.FeatureAnxious:           {SectionAnxious},
	domain.FeatureRisky:             {SectionRisky},
	domain.FeatureAngry:             {SectionAngry},
	domain.FeatureHighVelocity:      {SectionHighVelocity},
	domain.FeatureDistressReduction: {SectionDistressReduction},
	domain.FeaturePatient:           {SectionPatient},
	domain.FeatureCareful:           {SectionCareful},
	domain.FeatureErrors:            {SectionSlips, SectionMistakes},
	domain.FeatureViolations:        {SectionViolations},
	domain.FeatureLapses:            {SectionLapses},
}

var questionsByID = func() map[int]domain.Question {
	m := make(map[int]domain.Question)
	for _, s := range Sections {
		for _, q := range s.Questions {
			m[q.ID] = q
		}
	}
	return m
}()

// QuestionByID looks up a question in the bank.
func QuestionByID(id int) (domain.Question, bool) {
	q, ok := questionsByID[id]
	return q, ok
}

// QuestionCount returns the total number of questions in the bank.
func QuestionCount() int {
	return len(questionsByID)
}
