package invite

import "time"

// Card is one detail or highlight block on the invitation.
type Card struct {
	Icon  string
	Title string
	Lines []string
}

// Event is everything the invitation shows.
type Event struct {
	Title      string
	Tagline    string
	Starts     time.Time
	Details    []Card // When, Where, Fireworks
	Venue      string
	MapURL     string
	Heading    string
	Intro      string
	Highlights []Card
	DressCode  []string
	RSVPURL    string
	RSVPBy     string
	RSVPNote   string
}

// Default returns the Night of Mystics party.
func Default() Event {
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		loc = time.FixedZone("PDT", -7*60*60)
	}
	return Event{
		Title:   "Night of Mystics",
		Tagline: "The Bi-Annual Da Costa Halloween Party",
		Starts:  time.Date(2025, time.October, 31, 17, 0, 0, 0, loc),
		Details: []Card{
			{Title: "When", Lines: []string{"October 31st, 2025", "Doors open 4:00 PM", "Party: 5:00 PM - 12:00 AM"}},
			{Title: "Where", Lines: []string{"34-6833 Livingstone Place", "Richmond, BC V7C 5T1"}},
			{Title: "Fireworks Show", Lines: []string{"8:30 PM", "Don't miss the spectacular display!"}},
		},
		Venue:   "34-6833 Livingstone Place, Richmond, BC V7C 5T1",
		MapURL:  "https://maps.google.com/?q=34-6833+Livingstone+Place+Richmond+BC+V7C+5T1",
		Heading: "What to Expect",
		Intro:   "Get ready for a celebration for the books!",
		Highlights: []Card{
			{Icon: "🌮", Title: "Catering", Lines: []string{"Mexican Street Tacos"}},
			{Icon: "🍹", Title: "Drinks", Lines: []string{"Alcoholic & Non-Alcoholic", "+ Mixologist on Site!"}},
			{Icon: "💨", Title: "Hookah Bar", Lines: []string{"Relax and enjoy"}},
			{Icon: "🎬", Title: "Movie Night", Lines: []string{"Spooky screenings"}},
			{Icon: "🎆", Title: "Fireworks", Lines: []string{"Spectacular show at 8:30 PM"}},
			{Icon: "🎭", Title: "Intimate Gathering", Lines: []string{"Fun times with friends"}},
		},
		DressCode: []string{"Costumes are OPTIONAL", "However, please dress warmly for the fireworks show!"},
		RSVPURL:   "https://docs.google.com/forms/d/e/1FAIpQLSfXLCs60FlepVG9ZMjsjzQxKkqh51gPZ6_1wjlG1ir0fkvIoQ/viewform",
		RSVPBy:    "Please RSVP by October 25th",
		RSVPNote:  "Let us know you'll be joining us for this mystical night!",
	}
}

// MuteLabel is the accessible label of the sound toggle.
func MuteLabel(muted bool) string {
	if muted {
		return "Unmute sounds"
	}
	return "Mute sounds"
}

// Until returns the time left before the party starts, zero once it has.
func (e Event) Until(now time.Time) time.Duration {
	if !now.Before(e.Starts) {
		return 0
	}
	return e.Starts.Sub(now)
}
