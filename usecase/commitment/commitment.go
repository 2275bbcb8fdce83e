package commitment

import (
	"context"
	"strings"
	"text/template"
	"time"

	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/repository"
)

// Letter is a generated plain-text commitment document for one challenge.
type Letter struct {
	ChallengeID string    `json:"challengeId"`
	Content     string    `json:"content"`
	SignedDate  time.Time `json:"signedDate"`
	WitnessName string    `json:"witnessName,omitempty"`
	Filename    string    `json:"filename"`
}

// UseCase renders commitment letters from a challenge's name, dates and rules.
type UseCase struct {
	challenges repository.ChallengeRepository
	profiles   repository.ProfileRepository
	now        func() time.Time
}

// Option customizes a UseCase.
type Option func(*UseCase)

// WithClock overrides the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func New(challenges repository.ChallengeRepository, profiles repository.ProfileRepository, opts ...Option) *UseCase {
	uc := &UseCase{
		challenges: challenges,
		profiles:   profiles,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

const letterTemplate = `PERSONAL COMMITMENT LETTER

Challenge: {{.Name}}
Duration: {{.TotalDays}} days
Start Date: {{.StartDate}}
End Date: {{.EndDate}}

I, the undersigned, hereby commit to completing the "{{.Name}}" challenge for the next {{.TotalDays}} consecutive days.

COMMITMENT RULES:
{{- range $i, $rule := .Rules}}
{{inc $i}}. {{$rule}}
{{- end}}

I acknowledge that this commitment is a promise to myself for personal growth and development. I understand that consistency and dedication are key to achieving my goals.

I will track my progress daily and maintain accountability through:
- Daily task completion
- Regular progress reviews
- Video reflections when applicable
- Honest self-assessment

By signing this commitment, I pledge to give my best effort and maintain integrity throughout this challenge period.

Signed: {{if .Signature}}{{.Signature}}{{else}}_________________________{{end}}
Date: {{.Today}}
{{- if .WitnessName}}

Witness: {{.WitnessName}}
Witness Signature: _________________________
{{- end}}

"The journey of a thousand miles begins with one step." - Lao Tzu
`

var letterTmpl = template.Must(template.New("letter").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(letterTemplate))

type letterData struct {
	Name        string
	TotalDays   int
	StartDate   string
	EndDate     string
	Rules       []string
	Signature   string
	Today       string
	WitnessName string
}

// Generate renders the letter for a challenge. The profile's signature text is
// used when one has been saved.
func (uc *UseCase) Generate(ctx context.Context, challengeID, witnessName string) (*Letter, error) {
	challenge, err := uc.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	signature := ""
	if profile, err := uc.profiles.Get(ctx); err == nil {
		signature = profile.Signature
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	start, err := time.Parse(domain.DateLayout, challenge.StartDate)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "challenge has a malformed start date", err)
	}
	end := start.AddDate(0, 0, challenge.TotalDays-1)

	now := uc.now()
	var buf strings.Builder
	if err := letterTmpl.Execute(&buf, letterData{
		Name:        challenge.Name,
		TotalDays:   challenge.TotalDays,
		StartDate:   start.Format("Jan 2, 2006"),
		EndDate:     end.Format("Jan 2, 2006"),
		Rules:       challenge.Rules,
		Signature:   signature,
		Today:       now.Format("Jan 2, 2006"),
		WitnessName: witnessName,
	}); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "letter rendering failed", err)
	}

	return &Letter{
		ChallengeID: challenge.ID,
		Content:     buf.String(),
		SignedDate:  now,
		WitnessName: witnessName,
		Filename:    filename(challenge.Name),
	}, nil
}

func filename(challengeName string) string {
	name := strings.Join(strings.Fields(challengeName), "_")
	if name == "" {
		name = "challenge"
	}
	return name + "_Commitment_Letter.txt"
}
