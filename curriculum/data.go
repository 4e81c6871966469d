package curriculum

var stages = []Stage{
	{
		ID:          1,
		Title:       "Stage 1: The Foundation",
		Subtitle:    "ปูพื้นฐาน 0-20%",
		Description: "รากฐานที่มั่นคงคือกุญแจสำคัญ เริ่มต้นจากเสียงและการสร้างประโยคแรก",
		Topics: []Topic{
			{
				Title: "A-Z & Phonics",
				Desc:  "การออกเสียงที่ถูกต้อง ไม่ใช่แค่ท่องจำ",
				Content: `ทำไมต้อง **Phonics**? เพราะภาษาอังกฤษไม่ได้อ่านตรงตัวเสมอไป

#### ตัวอย่างเสียงที่คนไทยมักสับสน

- 🅰️ **A (แอะ):** Ant (มด), Cat (แมว) - ไม่ใช่สระเอ
- 🇨 **C (เคอะ):** Cup (ถ้วย), Cat (แมว) - เสียง ค.ควาย
- 🐍 **S (สึ):** Snake (งู) - ต้องมีเสียงลมลอดฟัน

**Tip:** ลองฝึกออกเสียงพยัญชนะต้นและตัวสะกดให้ชัดเจน เช่น "Cat" ต้องมีเสียง "ทึ" เบาๆ ตอนท้าย
`,
				Quiz: Quiz{
					Question:      "ตัว C ในคำว่า 'Cat' ออกเสียงว่าอย่างไร?",
					Options:       []string{"ซี (Sea)", "เคอะ (Kuh)", "จี (Gee)", "แอ (Ah)"},
					CorrectAnswer: 1,
				},
			},
			{
				Title: "Greetings & Introductions",
				Desc:  "การทักทายและแนะนำตัวแบบธรรมชาติ",
				Content: `เริ่มบทสนทนาง่ายๆ ด้วยคำเหล่านี้:

- 👋 **Hello / Hi** - สวัสดี (ทางการ / กันเอง)
- 🌞 **Good Morning** - สวัสดีตอนเช้า

#### Patterns การแนะนำตัว

- 🗣️ "My name is **[Name]**." (ฉันชื่อ...)
- 🌏 "I am from **Thailand**." (ฉันมาจากประเทศไทย)
- 🤝 "Nice to meet you." (ยินดีที่ได้รู้จัก)
`,
				Quiz: Quiz{
					Question:      "ถ้าต้องการทักทายเพื่อนสนิท ควรใช้คำว่าอะไร?",
					Options:       []string{"Good Morning", "Nice to meet you", "Hi", "Goodbye"},
					CorrectAnswer: 2,
				},
			},
			{
				Title: "Subject Pronouns",
				Desc:  "I, You, We, They, He, She, It",
				Content: `คำสรรพนามใช้เรียกแทนชื่อคน สัตว์ สิ่งของ ต้องแม่นยำ!

| คำศัพท์ | ความหมาย | ใช้กับ |
|---|---|---|
| **I** | ฉัน | ผู้พูด |
| **You** | คุณ | คู่สนทนา |
| **He** | เขา (ชาย) | คนอื่น 1 คน |
| **She** | เธอ (หญิง) | คนอื่น 1 คน |
| **It** | มัน | สัตว์/สิ่งของ |
| **We** | พวกเรา | ฉัน + คนอื่น |
| **They** | พวกเขา | คนอื่นหลายคน |
`,
				Quiz: Quiz{
					Question:      "ถ้าจะพูดถึง 'พวกเรา' ต้องใช้คำไหน?",
					Options:       []string{"They", "We", "You", "She"},
					CorrectAnswer: 1,
				},
			},
			{
				Title: "Verb to Be",
				Desc:  "is, am, are หัวใจสำคัญ",
				Content: `แปลว่า **เป็น, อยู่, คือ** กฎเหล็กที่ต้องจำให้ขึ้นใจ:

- **I** คู่กับ **am** - I am a student.
- **He/She/It** คู่กับ **is** - She is happy.
- **You/We/They** คู่กับ **are** - We are friends.
`,
				Quiz: Quiz{
					Question:      "เติมคำในช่องว่าง: She ... a doctor.",
					Options:       []string{"am", "are", "is", "be"},
					CorrectAnswer: 2,
				},
			},
		},
	},
	{
		ID:          2,
		Title:       "Stage 2: Basic Sentences",
		Subtitle:    "เริ่มแต่งประโยค 21-40%",
		Description: "เริ่มนำคำศัพท์มาร้อยเรียงเป็นประโยคที่สมบูรณ์",
		Topics: []Topic{
			{
				Title: "Nouns & Plurals",
				Desc:  "คำนามและกฎการเติม s/es",
				Content: `**Noun (คำนาม)** คือ คน สัตว์ สิ่งของ สถานที่

#### กฎการเปลี่ยนเป็นพหูพจน์ (Plural)

- เติม **s** ทั่วไป: Cat → Cats
- เติม **es** (ท้าย s, x, ch, sh): Box → Boxes
- เปลี่ยน **y** เป็น **i** เติม **es**: Baby → Babies
- เปลี่ยนรูป: Man → Men, Child → Children
`,
				Quiz: Quiz{
					Question:      "แมว 2 ตัว เขียนเป็นภาษาอังกฤษว่าอย่างไร?",
					Options:       []string{"Cat", "Cates", "Cats", "Cat's"},
					CorrectAnswer: 2,
				},
			},
			{
				Title: "Action Verbs",
				Desc:  "คำกริยาพื้นฐาน กิน, เดิน, นอน",
				Content: `คำศัพท์กริยาที่ต้องรู้เพื่อบอกการกระทำ:

- 🍕 Eat (กิน)
- 🥤 Drink (ดื่ม)
- 😴 Sleep (นอน)
- 🚶 Walk (เดิน)
- 🏃 Run (วิ่ง)
- 💼 Work (ทำงาน)

_"I **eat** pizza every day."_
`,
				Quiz: Quiz{
					Question:      "คำว่า 'เดิน' ภาษาอังกฤษคือ?",
					Options:       []string{"Run", "Walk", "Sleep", "Eat"},
					CorrectAnswer: 1,
				},
			},
			{
				Title: "Present Simple Tense",
				Desc:  "พูดถึงความจริงและกิจวัตร",
				Content: `**Subject + Verb 1**

ใช้พูดถึงเรื่องจริง หรือสิ่งที่ทำเป็นประจำ

> **⚠️ กฎสำคัญ:** ถ้าประธานเป็น He, She, It กริยาต้องเติม s หรือ es
>
> ❌ He play football.
>
> ✅ He **plays** football.
`,
				Quiz: Quiz{
					Question:      "ข้อใดถูกต้อง?",
					Options:       []string{"She walk to school.", "She walks to school.", "She walking to school.", "She walkes to school."},
					CorrectAnswer: 1,
				},
			},
			{
				Title: "Numbers, Days, Months",
				Desc:  "ตัวเลข วัน เดือน เวลา",
				Content: `#### Days

- Sunday, Monday
- Tuesday, Wednesday
- Thursday, Friday
- Saturday

#### Numbers

- 11: Eleven
- 12: Twelve
- 20: Twenty
- 100: One hundred
`,
				Quiz: Quiz{
					Question:      "Twelve คือเลขอะไร?",
					Options:       []string{"11", "12", "20", "21"},
					CorrectAnswer: 1,
				},
			},
		},
	},
	{
		ID:          3,
		Title:       "Stage 3: Daily Life",
		Subtitle:    "ชีวิตประจำวัน 41-60%",
		Description: "ขยายความสามารถในการบรรยายสิ่งรอบตัวและตั้งคำถาม",
		Topics: []Topic{
			{
				Title: "Adjectives",
				Desc:  "คำคุณศัพท์ บอกสี ขนาด อารมณ์",
				Content: `คำคุณศัพท์ (Adjective) ทำหน้าที่ขยายคำนาม วางได้ 2 ตำแหน่ง:

1. **หน้าคำนาม:** A **red** car (รถสีแดง)
2. **หลัง Verb to be:** She is **beautiful** (เธอสวย)

` + "`Big` ใหญ่ · `Small` เล็ก · `Happy` สุข · `Sad` เศร้า" + `
`,
				Quiz: Quiz{
					Question:      "ประโยคไหนใช้ Adjective ถูกต้อง?",
					Options:       []string{"A car red.", "A red car.", "Car is red a.", "Red is a car."},
					CorrectAnswer: 1,
				},
			},
			{
				Title: "Prepositions",
				Desc:  "in, on, at, under บอกตำแหน่ง",
				Content: `- **IN (ใน)** - In the box
- **ON (บน)** - On the table
- **AT (ที่)** - At school
- **UNDER (ใต้)** - Under the chair
`,
				Quiz: Quiz{
					Question:      "แมวนอนอยู่ ... (บน) โต๊ะ",
					Options:       []string{"in", "at", "under", "on"},
					CorrectAnswer: 3,
				},
			},
			{
				Title: "Question Words",
				Desc:  "Who, What, Where, When, Why, How",
				Content: `- 👤 **Who (ใคร):** Who is he?
- 🍎 **What (อะไร):** What is this?
- 📍 **Where (ที่ไหน):** Where do you live?
- ⏰ **When (เมื่อไหร่):** When is your birthday?
- ❓ **Why (ทำไม):** Why do you cry?
- 🛠️ **How (อย่างไร):** How are you?
`,
				Quiz: Quiz{
					Question:      "ถ้าอยากถามเกี่ยวกับ 'สถานที่' ต้องใช้คำไหน?",
					Options:       []string{"Who", "What", "Where", "When"},
					CorrectAnswer: 2,
				},
			},
			{
				Title: "Daily Routine",
				Desc:  "เล่ากิจวัตรประจำวัน",
				Content: `คำศัพท์ที่ใช้บ่อยในการเล่าเรื่องตัวเอง:

- 🌅 **Wake up:** ตื่นนอน
- 🚿 **Take a shower:** อาบน้ำ
- 🦷 **Brush teeth:** แปรงฟัน
- 🚗 **Go to work:** ไปทำงาน
- 🏠 **Go home:** กลับบ้าน
- 🛌 **Go to bed:** เข้านอน
`,
				Quiz: Quiz{
					Question:      "'Go to bed' แปลว่าอะไร?",
					Options:       []string{"ตื่นนอน", "ไปทำงาน", "เข้านอน", "ไปซื้อเตียง"},
					CorrectAnswer: 2,
				},
			},
		},
	},
	{
		ID:          4,
		Title:       "Stage 4: Time Travel",
		Subtitle:    "อดีตและอนาคต 61-80%",
		Description: "ปลดล็อกความสามารถในการเล่าเรื่องในอดีตและวางแผนอนาคต",
		Topics: []Topic{
			{
				Title: "Past Simple Tense",
				Desc:  "เล่าเรื่องในอดีต (Verb 2)",
				Content: `ใช้เล่าเรื่องที่**จบไปแล้ว** โครงสร้างคือ Subject + **Verb ช่อง 2**

#### การเปลี่ยนรูป Verb

- ปกติเติม **ed**: Walk → Walk**ed**
- เปลี่ยนรูป (Irregular): Go → **Went**, Eat → **Ate**

_"I **went** to the market yesterday."_
`,
				Quiz: Quiz{
					Question:      "รูปอดีต (V.2) ของ 'Go' คือ?",
					Options:       []string{"Goed", "Gone", "Went", "Going"},
					CorrectAnswer: 2,
				},
			},
			{
				Title: "Future Tense",
				Desc:  "Will vs Going to",
				Content: `#### Will (จะ)

ใช้กับการตัดสินใจทันที หรือคาดเดา

"I **will** call you later."

#### Going to (กำลังจะ)

ใช้กับแผนที่วางไว้แล้วแน่นอน

"I am **going to** visit Japan."
`,
				Quiz: Quiz{
					Question:      "ถ้าตัดสินใจเดี๋ยวนั้นว่าจะทำอะไร ควรใช้คำไหน?",
					Options:       []string{"Will", "Going to", "Shall", "Must"},
					CorrectAnswer: 0,
				},
			},
			{
				Title: "Continuous Tense",
				Desc:  "กำลังทำ... (is/am/are + ing)",
				Content: `เน้นเหตุการณ์ที่**กำลังเกิดขึ้นตอนนี้**

    Subject + is/am/are + V-ing

- ✅ I **am eating**. (ฉันกำลังกิน)
- ✅ She **is sleeping**. (เธอกำลังหลับ)
- ✅ They **are playing**. (พวกเขากำลังเล่น)
`,
				Quiz: Quiz{
					Question:      "She ... sleeping.",
					Options:       []string{"am", "are", "is", "be"},
					CorrectAnswer: 2,
				},
			},
			{
				Title: "Modal Verbs",
				Desc:  "Can, Should, Must",
				Content: `กริยาช่วยที่บอกความหมายพิเศษ:

- **Can** สามารถ/ทำได้ - _I can swim._
- **Should** ควรจะ (แนะนำ) - _You should sleep._
- **Must** ต้อง (บังคับ) - _I must go._
`,
				Quiz: Quiz{
					Question:      "ถ้าจะแนะนำเพื่อนว่า 'ควรจะ' นอนพักผ่อน ใช้คำไหน?",
					Options:       []string{"Can", "Must", "Should", "Will"},
					CorrectAnswer: 2,
				},
			},
		},
	},
	{
		ID:          5,
		Title:       "Stage 5: Conversation",
		Subtitle:    "สนทนาจริง 81-100%",
		Description: "นำทุกสิ่งที่เรียนมาใช้ในสถานการณ์จริง",
		Topics: []Topic{
			{
				Title: "Restaurant & Shopping",
				Desc:  "สั่งอาหารและซื้อของ",
				Content: `#### 🍽️ Restaurant

- "Can I have the menu, please?" (ขอเมนูหน่อย)
- "I would like..." (ฉันอยากได้...)
- "Check bill, please." (เก็บเงินด้วย)

#### 🛍️ Shopping

- "How much is this?" (อันนี้ราคาเท่าไหร่)
- "Can I try it on?" (ขอลองใส่ได้ไหม)
`,
				Quiz: Quiz{
					Question:      "'Check bill, please' แปลว่าอะไร?",
					Options:       []string{"ขอดูเมนู", "ขอใบเสร็จ", "เก็บเงินด้วย", "อาหารไม่อร่อย"},
					CorrectAnswer: 2,
				},
			},
			{
				Title: "Travel English",
				Desc:  "ภาษาอังกฤษเพื่อการท่องเที่ยว",
				Content: `- ✈️ **Airport:** "Where is the check-in counter?"
- 🚕 **Taxi:** "Please take me to this hotel."
- 🏨 **Hotel:** "I have a reservation." (ฉันจองไว้แล้ว)
- 🚽 **Emergency:** "Where is the toilet?"
`,
				Quiz: Quiz{
					Question:      "ประโยค 'I have a reservation' ใช้เมื่อไหร่?",
					Options:       []string{"เมื่อหลงทาง", "เมื่อจองโรงแรมไว้แล้ว", "เมื่อหิวข้าว", "เมื่อเรียกรถแท็กซี่"},
					CorrectAnswer: 1,
				},
			},
			{
				Title: "Job Interview",
				Desc:  "การสัมภาษณ์งานเบื้องต้น",
				Content: `**คำถามยอดฮิต:**

> **Q: Tell me about yourself.**
>
> A: I am... I have experience in...

> **Q: What are your strengths?**
>
> A: I am hardworking and a fast learner.
`,
				Quiz: Quiz{
					Question:      "Strengths หมายถึงอะไรในการสัมภาษณ์งาน?",
					Options:       []string{"จุดอ่อน", "จุดแข็ง/ข้อดี", "งานอดิเรก", "ประวัติการศึกษา"},
					CorrectAnswer: 1,
				},
			},
			{
				Title: "Slang & Idioms",
				Desc:  "พูดให้เหมือนเจ้าของภาษา",
				Content: `- **Piece of cake** - ง่ายมากๆ (กล้วยๆ)
- **Broke** - ถังแตก (ไม่มีเงิน)
- **Chill out** - ผ่อนคลาย
- **Hang out** - ออกไปเที่ยวเล่น
`,
				Quiz: Quiz{
					Question:      "ถ้าจะบอกว่า 'เรื่องนี้ง่ายมากๆ' ควรใช้สำนวนไหน?",
					Options:       []string{"Hang out", "Broke", "Piece of cake", "Chill out"},
					CorrectAnswer: 2,
				},
			},
		},
	},
}
