package actor

// Stat indexes the six core stats.
type Stat int

const (
	StatStr Stat = iota
	StatInt
	StatWis
	StatDex
	StatCon
	StatChr
)

// StatCount is the number of core stats.
const StatCount = 6

var statNames = [StatCount]string{"strong", "bright", "wise", "agile", "hale", "beautiful"}

// Adjective is the word used when a stat is drained ("not as strong as you used to be").
func (s Stat) Adjective() string { return statNames[s] }

// Stats holds one value per core stat. Values run from 3 to 40, where values
// above 18 stand for the 18/xx percentile range in steps of ten.
type Stats [StatCount]int

// MinStat is the floor any drain respects.
const MinStat = 3

// adjDexSafe is the theft-protection bonus by dexterity, indexed by stat-3.
var adjDexSafe = [...]int{
	0, 1, 2, 3, 4, 5, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
	17, 18, 20, 25, 30, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 100,
}

// DexSafe returns the theft-protection bonus for a dexterity value.
func DexSafe(dex int) int {
	i := dex - MinStat
	if i < 0 {
		i = 0
	}
	if i >= len(adjDexSafe) {
		i = len(adjDexSafe) - 1
	}
	return adjDexSafe[i]
}
