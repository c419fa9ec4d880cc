package domain

// Coin identifies one of the fixed memecoin match outcomes. The constant
// declaration order below is the canonical ordering used for tie-breaks.
type Coin string

const (
	Dogecoin  Coin = "Dogecoin"
	ShibaInu  Coin = "ShibaInu"
	Pepe      Coin = "Pepe"
	TrumpCoin Coin = "TrumpCoin"
	Dogwifhat Coin = "Dogwifhat"
	MogCoin   Coin = "MogCoin"
	Turbo     Coin = "Turbo"
	DOG       Coin = "DOG"
	Fartcoin  Coin = "Fartcoin"
	Pengu     Coin = "Pengu"
	Bonk      Coin = "Bonk"
	SPX       Coin = "SPX"
	Toshi     Coin = "Toshi"
	Brett     Coin = "Brett"
)

// DefaultCoin is the fallback match when no category scored above zero.
var DefaultCoin = Dogecoin

var coins = [...]Coin{
	Dogecoin, ShibaInu, Pepe, TrumpCoin, Dogwifhat, MogCoin, Turbo,
	DOG, Fartcoin, Pengu, Bonk, SPX, Toshi, Brett,
}

// Coins returns every known coin in canonical order.
func Coins() []Coin {
	out := make([]Coin, len(coins))
	copy(out, coins[:])
	return out
}

// CoinInfo carries the static presentation metadata for a coin.
type CoinInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Animal      string `json:"animal"`
}

var coinInfo = map[Coin]CoinInfo{
	Dogecoin:  {Name: "Dogecoin", Description: "The ultimate OG memecoin, born from fun and still going strong.", Animal: "Dog"},
	ShibaInu:  {Name: "Shiba Inu", Description: "A passionate and energetic community, the so-called 'Dogecoin killer.'", Animal: "Dog"},
	Pepe:      {Name: "Pepe", Description: "The most famous frog on the internet, pure meme culture.", Animal: "Frog"},
	TrumpCoin: {Name: "Trump Coin", Description: "A political memecoin with strong presence in online debates.", Animal: "None"},
	Dogwifhat: {Name: "dogwifhat", Description: "A quirky dog-themed memecoin with a cult following.", Animal: "Dog"},
	MogCoin:   {Name: "Mog Coin", Description: "A cat-themed memecoin for those who vibe with feline energy.", Animal: "Cat"},
	Turbo:     {Name: "Turbo", Description: "A high-energy memecoin for those who move fast.", Animal: "None"},
	DOG:       {Name: "DOG", Description: "A fresh take on dog-themed memecoins, full of loyalty.", Animal: "Dog"},
	Fartcoin:  {Name: "Fartcoin", Description: "The most humorous memecoin, because why not?", Animal: "None"},
	Pengu:     {Name: "Pengu", Description: "Cute penguin vibes with strong community spirit.", Animal: "Penguin"},
	Bonk:      {Name: "Bonk", Description: "Solana's favorite dog coin with explosive energy.", Animal: "Dog"},
	SPX:       {Name: "SPX", Description: "Market-focused memecoin for trading enthusiasts.", Animal: "None"},
	Toshi:     {Name: "Toshi", Description: "Base's beloved cat memecoin with sophisticated charm.", Animal: "Cat"},
	Brett:     {Name: "Brett", Description: "The blue guy from the memes, pure internet culture.", Animal: "None"},
}

// Known reports whether c is one of the fixed coins.
func (c Coin) Known() bool {
	_, ok := coinInfo[c]
	return ok
}

// Info returns the static metadata for a known coin.
func (c Coin) Info() CoinInfo {
	return coinInfo[c]
}

// Animal returns the coin's animal theme ("None" when it has no animal).
func (c Coin) Animal() string {
	return coinInfo[c].Animal
}

// Animals lists the selectable animal restriction values.
func Animals() []string {
	return []string{"All", "Dog", "Cat", "Frog", "Penguin", "None"}
}

// Blockchains lists the selectable blockchain filter values.
func Blockchains() []string {
	return []string{"All", "Ethereum", "Solana", "Base"}
}

// Tally accumulates points per coin within one quiz run.
type Tally map[Coin]int

// NewTally returns a tally with every known coin at zero.
func NewTally() Tally {
	t := make(Tally, len(coins))
	for _, c := range coins {
		t[c] = 0
	}
	return t
}

// Clone returns an independent copy of the tally.
func (t Tally) Clone() Tally {
	out := make(Tally, len(t))
	for c, v := range t {
		out[c] = v
	}
	return out
}
