package config

// DefaultProfile returns the delays, major terminals and checkpoint
// intervals the collectors have always run with.
func DefaultProfile() Profile {
	return Profile{
		Delays: Delays{
			TerminalListMS:   300,
			DestinationsMS:   100,
			SchedulesMS:      50,
			ProbeMS:          30,
			IntercityProbeMS: 50,
			AirportMS:        300,
		},
		Express: ExpressProfile{
			Majors: MajorTerminals{
				NamePatterns: append([]string(nil), expressNamePatterns...),
			},
			CheckpointEvery:      10,
			ProbeCheckpointEvery: 5,
		},
		Intercity: IntercityProfile{
			Majors: MajorTerminals{
				IDs:          append([]string(nil), intercityMajorIDs...),
				NamePatterns: append([]string(nil), intercityNamePatterns...),
			},
			CheckpointEvery: 10,
			RunWindow:       RunWindow{StartHour: 6, EndHour: 10},
		},
	}
}

var expressNamePatterns = []string{
	"서울", "부산", "대구", "대전", "광주", "인천", "울산", "센트럴", "동서울",
	"수원", "성남", "청주", "전주", "천안", "창원", "포항", "경주", "강릉",
	"춘천", "원주", "제주",
}

var intercityMajorIDs = []string{
	// 서울·수도권
	"NAI0511601", // 동서울
	"NAI0671801", // 서울남부
	"NAI0162503", // 수락터미널(도심공항)
	"NAI0654501", // 서울고속버스터미널(경부)
	"NAI0654601", // 센트럴
	"NAI2224201", // 인천
	"NAI2238201", // 인천공항1터미널
	"NAI2238202", // 인천공항2터미널
	"NAI0550201", // 잠실역
	"NAI0616401", // 코엑스(도심공항)
	"NAI0636201", // 수서역
	"NAI0750501", // 김포공항
	"NAI0619501", // 노원
	// 경기
	"NAI1174901", // 의정부
	"NAI1045001", // 고양(백석)
	"NAI1194401", // 구리
	"NAI1706301", // 용인
	"NAI1737301", // 이천
	"NAI1758501", // 안성
	"NAI1791901", // 평택
	"NAI1787001", // 용이동
	"NAI1242001", // 가평
	"NAI1697301", // 신갈(수원)
	// 강원
	"NAI2443501", // 춘천
	"NAI2482701", // 속초
	"NAI2503101", // 양양
	"NAI2463501", // 인제
	"NAI2461201", // 원통
	"NAI2452401", // 양구
	"NAI2573501", // 동해
	"NAI2592901", // 삼척
	"NAI2600701", // 태백
	// 충북
	"NAI2839701", // 청주
	"NAI2812001", // 청주북부터미널
	"NAI2848501", // 북청주
	"NAI2814201", // 청주공항
	"NAI2746901", // 교통대
	"NAI2891101", // 보은
	"NAI2914101", // 영동
	"NAI2903301", // 옥천
	"NAI2769501", // 음성
	"NAI2803301", // 괴산
	"NAI2793101", // 증평
	"NAI2783101", // 진천
	// 충남·세종
	"NAI3112001", // 천안
	"NAI3151704", // 아산(온양)
	"NAI3198101", // 서산
	"NAI3214401", // 태안
	"NAI3177101", // 당진
	"NAI3295401", // 논산
	"NAI3258501", // 공주
	"NAI3345801", // 보령(대천)
	"NAI3222001", // 홍성
	"NAI3315201", // 부여
	"NAI3273501", // 금산
	"NAI3332601", // 청양
	"NAI3216401", // 안면도
	"NAI3240601", // 덕산스파
	"NAI3242801", // 예산
	"NAI3241601", // 내포시
	"NAI3015401", // 세종
	"NAI3002601", // 조치원
	"NAI3147001", // 천안아산(KTX)역
	"NAI3364501", // 서천
	// 대전
	"NAI3455101", // 대전복합
	"NAI3498701", // 대전서남부
	"NAI3417501", // 유성
	"NAI3520501", // 대전청사
	"NAI3405501", // 대전도룡
	"NAI3403801", // 북대전IC
	"NAI3463901", // 대전신흥
	// 전북
	"NAI5576001", // 남원
	"NAI5615801", // 정읍
	"NAI5643301", // 고창
	"NAI5630801", // 부안
	"NAI5592801", // 임실
	"NAI5563201", // 장수
	"NAI5561401", // 장계
	"NAI5551501", // 무주
	"NAI5603501", // 순창
	// 전남
	"NAI6193701", // 광주(유·스퀘어)
	"NAI5796001", // 순천
	"NAI5971501", // 여수
	"NAI5775801", // 광양
	"NAI5825501", // 나주
	"NAI5734401", // 담양
	"NAI5841101", // 영암
	"NAI5812001", // 화순
	"NAI5945801", // 보성
	"NAI5942301", // 벌교
	"NAI5932401", // 장흥
	"NAI5955501", // 녹동
	"NAI5954001", // 고흥
	"NAI5704301", // 영광
	"NAI5715301", // 함평
	"NAI5765401", // 구례
	"NAI5754201", // 곡성
	// 경북
	"NAI4124601", // 동대구
	"NAI4248201", // 대구서부
	"NAI4171101", // 대구북부
	"NAI3815701", // 경주시외
	"NAI3923301", // 구미
	"NAI3958601", // 김천
	"NAI3607801", // 영주
	"NAI3888501", // 영천
	"NAI4002701", // 성주
	"NAI3643101", // 영덕
	"NAI3632601", // 울진
	// 경남
	"NAI4620401", // 부산동부
	"NAI4696901", // 부산서부(사상)
	"NAI4809501", // 부산해운대
	"NAI4773401", // 부산동래
	"NAI5139301", // 창원
	"NAI5135601", // 마산
	"NAI5170301", // 진해
	"NAI5093801", // 김해
	"NAI4472001", // 울산
	"NAI4463201", // 울산신복
	"NAI5023301", // 합천
	"NAI5213801", // 의령
	"NAI5003901", // 함양
}

var intercityNamePatterns = []string{
	"동서울", "서울남부", "수락", "인천", "인천공항",
	"춘천", "속초", "강릉", "원주",
	"청주", "충주", "제천",
	"천안", "아산", "서산", "당진", "논산", "공주", "보령", "홍성", "태안", "부여", "세종", "조치원",
	"대전", "유성",
	"전주", "익산", "군산", "남원", "정읍",
	"광주", "순천", "여수", "목포", "광양", "나주", "담양",
	"대구", "경주", "포항", "구미", "안동", "영주", "김천",
	"부산", "울산", "창원", "마산", "진해", "김해", "진주", "통영",
}
