package scoring

import "memematch-service/internal/domain"

// Option is one selectable answer with its per-coin point map.
type Option struct {
	Text   string              `json:"text"`
	Points map[domain.Coin]int `json:"points"`
}

// Question is one quiz question with its ordered options.
type Question struct {
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

var questions = []Question{
	{
		Question: "What's your trading style?",
		Options: []Option{
			{Text: "HODL until moon 🚀", Points: map[domain.Coin]int{domain.Dogecoin: 3, domain.ShibaInu: 2, domain.DOG: 1}},
			{Text: "Meme it till you make it", Points: map[domain.Coin]int{domain.Pepe: 3, domain.Fartcoin: 2, domain.MogCoin: 1}},
			{Text: "High energy, fast trades", Points: map[domain.Coin]int{domain.Turbo: 3, domain.Dogwifhat: 2, domain.Brett: 1}},
			{Text: "Political and chaotic", Points: map[domain.Coin]int{domain.TrumpCoin: 3, domain.SPX: 2, domain.Bonk: 1}},
		},
	},
	{
		Question: "What's your ideal vacation destination?",
		Options: []Option{
			{Text: "Moon resort with luxury amenities", Points: map[domain.Coin]int{domain.Dogecoin: 3, domain.Toshi: 2, domain.DOG: 1}},
			{Text: "Meme convention in Tokyo", Points: map[domain.Coin]int{domain.Pepe: 3, domain.MogCoin: 2, domain.Pengu: 1}},
			{Text: "Adventure racing in Monaco", Points: map[domain.Coin]int{domain.Turbo: 3, domain.Brett: 2, domain.Dogwifhat: 1}},
			{Text: "Political rally in Washington", Points: map[domain.Coin]int{domain.TrumpCoin: 3, domain.SPX: 2, domain.Fartcoin: 1}},
		},
	},
	{
		Question: "What's your favorite hobby?",
		Options: []Option{
			{Text: "Creating viral memes", Points: map[domain.Coin]int{domain.Pepe: 3, domain.Fartcoin: 2, domain.MogCoin: 1}},
			{Text: "Building crypto portfolios", Points: map[domain.Coin]int{domain.Dogecoin: 3, domain.ShibaInu: 2, domain.Toshi: 1}},
			{Text: "Speedrunning video games", Points: map[domain.Coin]int{domain.Turbo: 3, domain.Brett: 2, domain.DOG: 1}},
			{Text: "Debating on social media", Points: map[domain.Coin]int{domain.TrumpCoin: 3, domain.SPX: 2, domain.Bonk: 1}},
		},
	},
	{
		Question: "What motivates you the most?",
		Options: []Option{
			{Text: "Community and loyalty", Points: map[domain.Coin]int{domain.Dogecoin: 3, domain.ShibaInu: 2, domain.DOG: 1}},
			{Text: "Humor and creativity", Points: map[domain.Coin]int{domain.Pepe: 3, domain.Fartcoin: 2, domain.Dogwifhat: 1}},
			{Text: "Speed and innovation", Points: map[domain.Coin]int{domain.Turbo: 3, domain.Brett: 2, domain.Toshi: 1}},
			{Text: "Power and influence", Points: map[domain.Coin]int{domain.TrumpCoin: 3, domain.SPX: 2, domain.MogCoin: 1}},
		},
	},
	{
		Question: "What's your communication style?",
		Options: []Option{
			{Text: "Friendly and supportive", Points: map[domain.Coin]int{domain.Dogecoin: 3, domain.DOG: 2, domain.Pengu: 1}},
			{Text: "Sarcastic and witty", Points: map[domain.Coin]int{domain.Pepe: 3, domain.Fartcoin: 2, domain.MogCoin: 1}},
			{Text: "Direct and energetic", Points: map[domain.Coin]int{domain.Turbo: 3, domain.Brett: 2, domain.Dogwifhat: 1}},
			{Text: "Bold and controversial", Points: map[domain.Coin]int{domain.TrumpCoin: 3, domain.SPX: 2, domain.Bonk: 1}},
		},
	},
}

// Questions returns the static question bank.
func Questions() []Question {
	return questions
}
