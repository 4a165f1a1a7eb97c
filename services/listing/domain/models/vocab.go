package models

// NameChangesSentinel is the "15 or more" value for a listing's name-change
// count. It doubles as the filter bound that disables name-change filtering.
const NameChangesSentinel = 15

// AccountTypes is the fixed vocabulary of tier/category tags a listing can carry.
var AccountTypes = []string{
	"High Tier", "OG", "Semi-OG", "Low Tier", "Minecon", "Stats", "Caped",
}

// CapeNames is the fixed vocabulary of cosmetic cape tags.
var CapeNames = []string{
	"15th Anniversary", "Cherry Blossom", "Common", "Copper", "Follower's", "Founder's",
	"Home", "MCC 15Tth Year", "Menace", "Migrator", "MineCon 2011", "MineCon 2012",
	"MineCon 2013", "MineCon 2015", "MineCon 2016", "Minecraft Experience",
	"Mojang Office", "Pan", "Purple Heart", "Realms Mapmaker", "Translator",
	"Vanilla", "Yearn", "Zombie Horse",
}

// IsValidAccountType reports whether s belongs to the account-type vocabulary.
func IsValidAccountType(s string) bool {
	for _, t := range AccountTypes {
		if t == s {
			return true
		}
	}
	return false
}

// IsValidCapeName reports whether s belongs to the cape vocabulary.
func IsValidCapeName(s string) bool {
	for _, c := range CapeNames {
		if c == s {
			return true
		}
	}
	return false
}
