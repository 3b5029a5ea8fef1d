package xmlcursor

type qnameCache struct {
	table       map[qnameKey]QName
	recent      [qnameCacheRecentSize]qnameCacheEntry
	recentCount int
	recentIndex int
	maxEntries  int
}

type qnameKey struct {
	namespace string
	local     string
}

const qnameCacheRecentSize = 8
const qnameCacheMaxEntries = 4096

type qnameCacheEntry struct {
	namespace string
	local     string
	qname     QName
}

func newQNameCache() *qnameCache {
	return &qnameCache{
		table:      make(map[qnameKey]QName, 32),
		maxEntries: qnameCacheMaxEntries,
	}
}

func (i *qnameCache) lookupRecent(namespace, local string) (QName, bool) {
	for idx := 0; idx < i.recentCount; idx++ {
		entry := i.recent[idx]
		if entry.namespace == namespace && entry.local == local {
			return entry.qname, true
		}
	}
	return QName{}, false
}

func (i *qnameCache) rememberRecent(entry qnameCacheEntry) {
	if i.recentCount < qnameCacheRecentSize {
		i.recent[i.recentCount] = entry
		i.recentCount++
		return
	}
	i.recent[i.recentIndex] = entry
	i.recentIndex++
	if i.recentIndex >= qnameCacheRecentSize {
		i.recentIndex = 0
	}
}

// internBytes maps (namespace, local) to a QName with stable string storage.
// The lookup avoids allocating for local when the pair has been seen before.
func (i *qnameCache) internBytes(namespace string, local []byte) QName {
	if i == nil {
		return QName{Namespace: namespace, Local: string(local)}
	}
	if i.table == nil {
		i.table = make(map[qnameKey]QName, 32)
	}
	localKey := unsafeString(local)
	if qname, ok := i.lookupRecent(namespace, localKey); ok {
		return qname
	}
	key := qnameKey{namespace: namespace, local: localKey}
	if qname, ok := i.table[key]; ok {
		i.rememberRecent(qnameCacheEntry{namespace: namespace, local: qname.Local, qname: qname})
		return qname
	}
	localStable := string(local)
	qname := QName{Namespace: namespace, Local: localStable}
	if i.maxEntries <= 0 || len(i.table) < i.maxEntries {
		i.table[qnameKey{namespace: namespace, local: localStable}] = qname
	}
	i.rememberRecent(qnameCacheEntry{namespace: namespace, local: localStable, qname: qname})
	return qname
}
