package booking

import "net/url"

type Prefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UTM struct {
	UTMSource string `json:"utmSource"`
	UTMMedium string `json:"utmMedium"`
}

type DisplayOptions struct {
	HideEventTypeDetails   bool `json:"hideEventTypeDetails"`
	HideLandingPageDetails bool `json:"hideLandingPageDetails"`
	HideGDPRBanner         bool `json:"hideGdprBanner"`
}

// Widget is everything the page needs to render the inline scheduler.
type Widget struct {
	ScriptURL string         `json:"scriptUrl"`
	URL       string         `json:"url"`
	Modality  Modality       `json:"modality"`
	Prefill   Prefill        `json:"prefill"`
	UTM       UTM            `json:"utm"`
	Display   DisplayOptions `json:"display"`
}

// Links maps each modality to its event page.
type Links struct {
	ScriptURL string
	InPerson  string
	Virtual   string
	UTM       UTM
}

func (l Links) EventURL(m Modality) string {
	if m == ModalityVirtual {
		return l.Virtual
	}
	return l.InPerson
}

// PrepareWidget requires a session whose modality has been selected and moves it to WidgetReady.
func PrepareWidget(s *Session, l Links) (Widget, error) {
	if err := s.WidgetReady(); err != nil {
		return Widget{}, err
	}
	c := s.Customer()
	return Widget{
		ScriptURL: l.ScriptURL,
		URL:       l.EventURL(s.Modality()),
		Modality:  s.Modality(),
		Prefill:   Prefill{Name: c.Name, Email: c.Email},
		UTM:       l.UTM,
		Display:   DisplayOptions{HideGDPRBanner: true},
	}, nil
}

// PrefilledURL is the event URL with prefill and UTM query parameters, for
// clients that open the scheduler in a popup instead of inline.
func (w Widget) PrefilledURL() string {
	u, err := url.Parse(w.URL)
	if err != nil {
		return w.URL
	}
	q := u.Query()
	if w.Prefill.Name != "" {
		q.Set("name", w.Prefill.Name)
	}
	if w.Prefill.Email != "" {
		q.Set("email", w.Prefill.Email)
	}
	if w.UTM.UTMSource != "" {
		q.Set("utm_source", w.UTM.UTMSource)
	}
	if w.UTM.UTMMedium != "" {
		q.Set("utm_medium", w.UTM.UTMMedium)
	}
	if w.Display.HideGDPRBanner {
		q.Set("hide_gdpr_banner", "1")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
