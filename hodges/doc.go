package hodges

/*

# Hodges sets: lossy, fixed size membership

A Hodges set is the "opposite of a Bloom filter". Where a Bloom filter never
gives a false negative, a Hodges set can give both false negatives and false
positives, and each is tuned by its own parameter:

- "probably not present" is answered with high confidence
- "probably present" is answered with medium confidence

The structure is intended for cases where set state must be stored or shipped
under a tight size budget, for example telling a peer which objects are in a
cache.

## Algorithm

Each entry is mapped to a slot index k and a token v by double hashing:

	d1 = hex(H(entry))
	k  = int(d1) & (slotCount - 1)
	d2 = hex(H(d1))          // H over the hex text of d1, not its raw bytes
	v  = d2[:valueSize]

Add stores v in slot k, overwriting whatever was there. Contains reports
whether slot k currently holds exactly v.

- slotCount controls false negatives: a later entry landing on the same slot
  evicts the earlier one.
- valueSize controls false positives: an absent entry is reported present
  only if its token matches the occupant by chance, about 1 in 16^valueSize.

## Layout

Tokens are stored at nibble (hex character) granularity, packed two to a
byte, so the token storage is exactly slotCount*valueSize*4 bits:

	+----------------------+  ceil(slotCount/8) bytes, LSB0
	| occupancy bitset     |
	+----------------------+  ceil(slotCount*valueSize/2) bytes
	| packed tokens        |  slot i owns nibbles [i*valueSize, (i+1)*valueSize)
	+----------------------+

Nibble n lives in byte n/2; even nibbles are the high half of the byte so the
packed form reads in the same order as the hex text.

## Concurrency

Set is not safe for concurrent use. Callers serialise access or wrap the set
with NewSyncSet.

*/
