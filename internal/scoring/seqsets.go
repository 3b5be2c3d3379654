package scoring

// Entry sequence ids of the particles, copulae and affixes the adjacency
// rules key on.
const (
	seqWa   = 2028920 // は
	seqGa   = 2028930 // が
	seqNi   = 2028990 // に
	seqDe   = 2028980 // で
	seqHe   = 2029000 // へ
	seqWo   = 2029010 // を
	seqNo   = 1469800 // の
	seqTo   = 1008490 // と
	seqMo   = 2028940 // も
	seqYa   = 2028960 // や
	seqKa   = 2028970 // か
	seqYo   = 2029090 // よ
	seqNe   = 2029080 // ね

	seqNiha    = 2215430 // には
	seqToha    = 2028950 // とは
	seqToka    = 1008530 // とか
	seqToshite = 1008590 // として
	seqDesae   = 2034520 // でさえ

	seqDake    = 1007340 // だけ
	seqGoro    = 1579080 // ごろ
	seqMade    = 1525680 // まで
	seqNado    = 1582300 // など
	seqNomi    = 1009990 // のみ
	seqSae     = 1005120 // さえ
	seqKara    = 1002980 // から
	seqNitotte = 1009600 // にとって

	seqCopulaDa    = 2089020 // だ
	seqCopulaDesu  = 1628500 // です
	seqDesuAlt     = 1007370 // です (sense variant)
	seqCopulaDarou = 1928670 // だろう

	seqN          = 2139720 // ん (nominalizer)
	seqNaParticle = 2029110 // な
	seqNiParticle = 2028990 // に

	seqSouDemo = 2137720 // そう (demonstrative)
	seqNanda   = 2140410 // なんだ
	seqToori   = 1432920 // 通り
	seqShika   = 1005460 // しか

	seqTachi   = 1416220 // たち
	seqBuri    = 1361140 // ぶり
	seqSei     = 1375260 // 性
	seqOPrefix = 2826528 // お
)

// nounParticles are the particles that attach to a preceding noun.
var nounParticles = map[int64]bool{
	seqWa: true, seqGa: true, seqNi: true, seqDe: true, seqHe: true,
	seqDake: true, seqGoro: true, seqMade: true, seqMo: true,
	seqNado: true, seqNiha: true, seqNo: true, seqNomi: true,
	seqWo: true, seqSae: true, seqDesae: true, seqTo: true,
	seqToka: true, seqToshite: true, seqToha: true, seqYa: true,
	seqNitotte: true,
}

// semiFinalPrt are particles that normally close a clause; a match followed
// by more content is penalized.
var semiFinalPrt = map[int64]bool{
	seqYo: true, seqNe: true, seqKa: true,
}

// noDaCopulae follow の/ん in the explanatory construction.
var noDaCopulae = map[int64]bool{
	seqCopulaDa: true, seqDesuAlt: true, seqCopulaDarou: true,
}

var chuSeqs = map[int64]bool{1620400: true, 2083570: true}   // 中
var okiSeqs = map[int64]bool{2854117: true, 2084550: true}   // おき
var kanjiPrefixSeqs = map[int64]bool{2242840: true, 1922780: true, 2423740: true} // 未 不 無

// ikenaiSeqs are the prohibition tails of ちゃ/じゃ contractions.
var ikenaiSeqs = map[int64]bool{
	1000730: true, 1612750: true, 1409110: true, 2829697: true, 1587610: true,
}

// teAuxiliaries are verbs that attach to a preceding te-form.
var teAuxiliaries = map[int64]bool{
	1577980: true, // いる
	1577985: true, // おる
	1296400: true, // ある
	1305380: true, // しまう
	1421850: true, // おく
	1547720: true, // くる
	1578850: true, // いく
	1269130: true, // くれる
	1535910: true, // もらう
	1587290: true, // いただく
	1259290: true, // みる
	1352320: true, // あげる
	1547330: true, // ほしい
}

// skipWords are suffix-only entries that never stand alone.
var skipWords = map[int64]bool{
	2013800: true, // ちゃう
	2210750: true, // ちまう
	2017560: true, // たい
	2772730: true, // にくい
}

// particleEndingExceptions legitimately end with particle characters and are
// exempt from the absorbed-particle length penalty.
var particleEndingExceptions = map[int64]bool{
	1008450: true, // では
	2089020: true, // だ
	1628500: true, // です
	1324320: true, // もしくは
	1524990: true, // または
	1586850: true, // あるいは
}

// IsSkipWord reports whether seq is a suffix-only entry.
func IsSkipWord(seq int64) bool { return skipWords[seq] }
